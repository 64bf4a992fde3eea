package pipeline

import (
	"io"

	"github.com/pkg/errors"
	"github.com/valyala/fasttemplate"

	"github.com/seqtools/rnavar/pkg/pipeline/model"
)

// Vars holds the values substituted into stage command and artifact
// templates. Placeholders use single braces, e.g. {sample}.
type Vars map[string]string

// Stage is one declarative unit of work: a command template for an external
// tool, plus the artifact paths it consumes and produces. A Stage performs no
// computation itself; everything is delegated to the child process.
type Stage struct {
	Name    string
	Tool    string
	Command string
	Inputs  []string
	Outputs []string
	Retries int
}

type StageOption func(s *Stage)

// StageRetries sets how many times a failed stage is relaunched before the
// run is aborted.
func StageRetries(n int) StageOption {
	return func(s *Stage) {
		s.Retries = n
	}
}

func render(tpl string, vars Vars) (string, error) {
	t, err := fasttemplate.NewTemplate(tpl, "{", "}")
	if err != nil {
		return "", errors.Wrap(err, "unable to parse template")
	}

	return t.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		v, ok := vars[tag]
		if !ok {
			return 0, errors.Wrapf(ErrUnknownPlaceholder, "%q", tag)
		}

		return io.WriteString(w, v)
	})
}

// resolve renders the stage templates into a StageInfo. Rendering is pure
// string substitution, so resolving the same stage with the same vars always
// yields the same command and paths.
func (s Stage) resolve(vars Vars) (*model.StageInfo, error) {
	command, err := render(s.Command, vars)
	if err != nil {
		return nil, errors.Wrapf(err, "stage %s: command", s.Name)
	}

	info := &model.StageInfo{
		Name:    s.Name,
		Tool:    s.Tool,
		Command: command,
		Inputs:  make([]string, 0, len(s.Inputs)),
		Outputs: make([]string, 0, len(s.Outputs)),
	}

	for _, in := range s.Inputs {
		p, err := render(in, vars)
		if err != nil {
			return nil, errors.Wrapf(err, "stage %s: input", s.Name)
		}
		info.Inputs = append(info.Inputs, p)
	}

	for _, out := range s.Outputs {
		p, err := render(out, vars)
		if err != nil {
			return nil, errors.Wrapf(err, "stage %s: output", s.Name)
		}
		info.Outputs = append(info.Outputs, p)
	}

	return info, nil
}
