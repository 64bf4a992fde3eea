// Package preflight checks everything a run depends on before the first
// external process is launched: the reference bundle, the raw FASTQ inputs
// and the tool binaries. A problem found here is reported as its own error
// instead of surfacing later as an opaque tool failure.
package preflight

import (
	"bufio"
	"os"
	"os/exec"
	"strings"

	"github.com/klauspost/pgzip"
	"github.com/pkg/errors"
)

// MissingReferenceError lists reference bundle files that do not exist.
type MissingReferenceError struct {
	Missing []string
}

func (e *MissingReferenceError) Error() string {
	return "missing reference files: " + strings.Join(e.Missing, ", ")
}

// References checks that every reference bundle path exists.
func References(paths []string) error {
	missing := []string{}
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, path)
		}
	}

	if len(missing) > 0 {
		return &MissingReferenceError{Missing: missing}
	}

	return nil
}

// FastqGzip checks that path is a readable gzip FASTQ by decoding its first
// record.
func FastqGzip(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "unable to open fastq %s", path)
	}
	defer file.Close()

	zr, err := pgzip.NewReader(file)
	if err != nil {
		return errors.Wrapf(err, "%s is not valid gzip", path)
	}
	defer zr.Close()

	record := make([]string, 0, 4)
	scanner := bufio.NewScanner(zr)
	for len(record) < 4 && scanner.Scan() {
		record = append(record, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "unable to read fastq %s", path)
	}

	if len(record) < 4 {
		return errors.Errorf("%s: truncated fastq record", path)
	}
	if !strings.HasPrefix(record[0], "@") {
		return errors.Errorf("%s: fastq header must start with @", path)
	}
	if !strings.HasPrefix(record[2], "+") {
		return errors.Errorf("%s: fastq separator must start with +", path)
	}
	if len(record[1]) != len(record[3]) {
		return errors.Errorf("%s: fastq sequence and quality lengths differ", path)
	}

	return nil
}

// ToolStatus reports whether a tool binary resolves on PATH.
type ToolStatus struct {
	Name  string
	Path  string
	Found bool
}

// Tools looks up each binary on PATH. Multi-word overrides are resolved by
// their first word.
func Tools(names []string) []ToolStatus {
	statuses := make([]ToolStatus, 0, len(names))
	for _, name := range names {
		binary, _, _ := strings.Cut(name, " ")
		path, err := exec.LookPath(binary)
		statuses = append(statuses, ToolStatus{
			Name:  name,
			Path:  path,
			Found: err == nil,
		})
	}

	return statuses
}

// MissingTools filters statuses down to the names not found on PATH.
func MissingTools(statuses []ToolStatus) []string {
	missing := []string{}
	for _, st := range statuses {
		if !st.Found {
			missing = append(missing, st.Name)
		}
	}

	return missing
}
