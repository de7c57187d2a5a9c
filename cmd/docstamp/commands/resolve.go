package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docstamp/internal/build"
	"git.home.luguber.info/inful/docstamp/internal/config"
	"git.home.luguber.info/inful/docstamp/internal/foundation/errors"
	"git.home.luguber.info/inful/docstamp/internal/logfields"
	"git.home.luguber.info/inful/docstamp/internal/revision"
)

// ResolveCmd implements the 'resolve' command.
type ResolveCmd struct {
	Format string `short:"f" help:"Output format (yaml|json|env)" enum:"yaml,json,env" default:"yaml"`
}

func (r *ResolveCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	subs, err := resolveSubstitutions(context.Background(), g, cfg)
	if err != nil {
		return err
	}
	out, err := formatSubstitutions(subs, r.Format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(g.Stdout, out)
	return err
}

func resolveSubstitutions(ctx context.Context, g *Global, cfg *config.Config) (map[string]string, error) {
	querier, err := build.QuerierFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	rec, flush := newRecorder(cfg, g.Logger)
	defer flush()
	info := revision.NewResolver(querier, cfg.Project.StartYear,
		revision.WithLogger(g.Logger),
		revision.WithRecorder(rec)).Resolve(ctx)
	subs, fallbacks := revision.Substitutions(info, revision.LinkPattern{Prefix: cfg.Links.PDFPrefix, Suffix: cfg.Links.PDFSuffix})
	for _, key := range fallbacks {
		rec.IncFallback(key)
		g.Logger.Warn("Using fallback substitution", logfields.Key(key), "value", subs[key])
	}
	return subs, nil
}

func formatSubstitutions(subs map[string]string, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(subs, "", "  ")
		if err != nil {
			return "", errors.InternalError("failed to encode substitutions").WithCause(err).Build()
		}
		return string(data) + "\n", nil
	case "env":
		keys := make([]string, 0, len(subs))
		for k := range subs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, k := range keys {
			fmt.Fprintf(&b, "DOCSTAMP_%s=%q\n", strings.ToUpper(k), subs[k])
		}
		return b.String(), nil
	default:
		data, err := yaml.Marshal(subs)
		if err != nil {
			return "", errors.InternalError("failed to encode substitutions").WithCause(err).Build()
		}
		return string(data), nil
	}
}
