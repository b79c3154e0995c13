package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sidd-007/authdiag/pkg/auth"
	"github.com/Sidd-007/authdiag/pkg/config"
	"github.com/Sidd-007/authdiag/pkg/dotenv"
	"github.com/Sidd-007/authdiag/pkg/mask"
)

// LookupFunc reads a variable from the environment
type LookupFunc func(key string) (string, bool)

// Comparison of an environment value with the env file entry of the same name
const (
	DotenvMatch   = "match"
	DotenvDiffers = "differs"
	DotenvMissing = "missing"
	DotenvUnknown = NotApplicable
)

// NotApplicable fills a report field that has no value
const NotApplicable = "n/a"

// Reporter prints masked authentication diagnostics
type Reporter struct {
	cfg       config.ReportConfig
	lookup    LookupFunc
	inspector *auth.Inspector
	logger    zerolog.Logger
}

// New creates a reporter reading variables through lookup
func New(cfg config.ReportConfig, lookup LookupFunc, logger zerolog.Logger) *Reporter {
	return &Reporter{
		cfg:       cfg,
		lookup:    lookup,
		inspector: auth.NewInspector(cfg.KeyPrefix),
		logger:    logger,
	}
}

type variable struct {
	name  string
	value string
	set   bool
}

// Run writes the full report to w. A missing env file is reported, not
// returned as an error; read and decode failures are.
func (r *Reporter) Run(w io.Writer) error {
	vars := make([]variable, 0, 2)
	for _, name := range []string{r.cfg.APIKeyVar, r.cfg.AuthTokenVar} {
		value, ok := r.lookup(name)
		vars = append(vars, variable{name: name, value: value, set: ok})
	}

	for _, v := range vars {
		fmt.Fprintf(w, "%s set: %s\n", v.name, formatBool(v.set))
		fmt.Fprintf(w, "%s masked: %s\n", v.name, mask.Display(v.value, v.set))
	}

	exists, err := dotenv.Exists(r.cfg.EnvFile)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s exists: %s\n", r.cfg.EnvFile, formatBool(exists))

	if exists {
		if err := r.writeHead(w); err != nil {
			return err
		}
	}

	fileValues := r.fileValues(exists)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- Diagnostic checks (no secret shown) ---")
	for _, v := range vars {
		r.writeCheck(w, v, fileValues)
	}

	return nil
}

func (r *Reporter) writeHead(w io.Writer) error {
	r.logger.Debug().
		Str("path", r.cfg.EnvFile).
		Int("max_lines", r.cfg.MaxLines).
		Msg("Reading env file")

	lines, err := dotenv.Head(r.cfg.EnvFile, r.cfg.MaxLines)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nFirst %d lines of %s (masked values):\n", r.cfg.MaxLines, filepath.Base(r.cfg.EnvFile))
	for _, line := range lines {
		if line.Assignment {
			fmt.Fprintf(w, "%s=%s\n", line.Key, mask.Value(line.Value))
			continue
		}
		fmt.Fprintln(w, line.Raw)
	}

	return nil
}

// fileValues parses the env file for the env-versus-file comparison. A
// parse failure only disables the comparison.
func (r *Reporter) fileValues(exists bool) map[string]string {
	if !exists {
		return nil
	}

	values, err := dotenv.Values(r.cfg.EnvFile)
	if err != nil {
		r.logger.Debug().Err(err).Msg("Env file comparison skipped")
		return nil
	}
	return values
}

func (r *Reporter) writeCheck(w io.Writer, v variable, fileValues map[string]string) {
	label := v.name + " (env)"
	if !v.set {
		fmt.Fprintf(w, "%s: not set\n", label)
		return
	}

	d := r.inspector.Inspect(v.value)
	fmt.Fprintf(w, "%s: set -> masked=%s, length=%d, %s=%s, has_quotes=%s, has_whitespace=%s\n",
		label,
		d.Masked,
		d.Length,
		auth.PrefixLabel(r.inspector.Prefix()),
		formatBool(d.HasPrefix),
		formatBool(d.HasQuotes),
		formatBool(d.HasWhitespace),
	)
	fingerprint := d.Fingerprint
	if fingerprint == "" {
		fingerprint = NotApplicable
	}
	fmt.Fprintf(w, "  fingerprint=%s, token=%s, dotenv=%s\n",
		fingerprint,
		formatToken(d.Token),
		compareDotenv(v, fileValues),
	)
}

func compareDotenv(v variable, fileValues map[string]string) string {
	if fileValues == nil {
		return DotenvUnknown
	}
	fileValue, ok := fileValues[v.name]
	if !ok {
		return DotenvMissing
	}
	if fileValue != v.value {
		return DotenvDiffers
	}
	return DotenvMatch
}

func formatToken(info auth.TokenInfo) string {
	if info.Kind != auth.TokenKindJWT {
		return string(info.Kind)
	}

	parts := []string{"alg=" + info.Algorithm}
	if info.ExpiresAt != nil {
		parts = append(parts,
			"exp="+info.ExpiresAt.UTC().Format(time.RFC3339),
			"expired="+formatBool(info.Expired),
		)
	}
	if info.NotYetValid {
		parts = append(parts, "not_yet_valid=True")
	}
	return fmt.Sprintf("jwt(%s)", strings.Join(parts, " "))
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
