package rnaseq

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Reference is the read-only bundle every run depends on.
type Reference struct {
	// Fasta is the genome sequence; GTF the gene annotation.
	Fasta string
	GTF   string
	// StarIndex is the directory holding the prebuilt aligner index.
	StarIndex string
	// DbSNP and KnownIndels are the known-variant-site VCFs used for base
	// quality recalibration.
	DbSNP       string
	KnownIndels []string
	// AnnovarDB is the annotation database directory, AnnovarBuild its
	// genome build tag.
	AnnovarDB    string
	AnnovarBuild string
}

// Files returns every path preflight must find before a run starts.
func (r Reference) Files() []string {
	files := []string{r.Fasta, r.GTF, r.StarIndex, r.DbSNP, r.AnnovarDB}
	files = append(files, r.KnownIndels...)

	return files
}

// knownSitesArgs renders the repeated --known-sites flags for the
// recalibration call.
func (r Reference) knownSitesArgs() string {
	sites := append([]string{r.DbSNP}, r.KnownIndels...)
	args := make([]string, 0, len(sites))
	for _, site := range sites {
		args = append(args, "--known-sites "+site)
	}

	return strings.Join(args, " ")
}

// Config is the file-backed run configuration: the reference bundle, tool
// path overrides and the thread count handed to multi-threaded tools.
type Config struct {
	Reference Reference
	Tools     Tools
	Threads   int
}

// LoadConfig reads a configuration file. Any format viper understands works;
// the reference section is required, tools and threads have defaults.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("reference.annovar_build", "hg38")
	v.SetDefault("threads", 4)

	err := v.ReadInConfig()
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read config %s", path)
	}

	cfg := &Config{
		Reference: Reference{
			Fasta:        v.GetString("reference.fasta"),
			GTF:          v.GetString("reference.gtf"),
			StarIndex:    v.GetString("reference.star_index"),
			DbSNP:        v.GetString("reference.dbsnp"),
			KnownIndels:  v.GetStringSlice("reference.known_indels"),
			AnnovarDB:    v.GetString("reference.annovar_db"),
			AnnovarBuild: v.GetString("reference.annovar_build"),
		},
		Tools:   Tools(v.GetStringMapString("tools")),
		Threads: v.GetInt("threads"),
	}

	for name, value := range map[string]string{
		"reference.fasta":      cfg.Reference.Fasta,
		"reference.gtf":        cfg.Reference.GTF,
		"reference.star_index": cfg.Reference.StarIndex,
		"reference.dbsnp":      cfg.Reference.DbSNP,
		"reference.annovar_db": cfg.Reference.AnnovarDB,
	} {
		if value == "" {
			return nil, errors.Errorf("config %s: %s must be set", path, name)
		}
	}

	return cfg, nil
}
