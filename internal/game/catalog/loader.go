package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/DukeRulesEngine/internal/game/core"
)

//go:embed default.yaml
var defaultCatalog []byte

// fileSpec is the on-disk layout of a catalog
type fileSpec struct {
	Starting []string             `yaml:"starting"`
	Troops   map[string]troopSpec `yaml:"troops"`
}

type troopSpec struct {
	Count int        `yaml:"count"`
	Side1 []ruleSpec `yaml:"side1"`
	Side2 []ruleSpec `yaml:"side2"`
}

// ruleSpec is one movement square in file (a-e) / rank (1-5) notation,
// centred on c3.
type ruleSpec struct {
	File string `yaml:"file"`
	Rank int    `yaml:"rank"`
	Move string `yaml:"move"`
}

// Default returns the built-in catalog for the base game
func Default() (*Catalog, error) {
	c, err := Load(bytes.NewReader(defaultCatalog))
	if err != nil {
		return nil, errors.Wrap(err, "built-in catalog")
	}
	return c, nil
}

// MustDefault is Default for callers that treat a broken built-in catalog as fatal
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFile reads a catalog from a YAML file
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open catalog %s", path)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load catalog %s", path)
	}
	return c, nil
}

// Load decodes a catalog. Every troop must describe both sides; all such
// gaps are reported together.
func Load(r io.Reader) (*Catalog, error) {
	var spec fileSpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}

	c := &Catalog{troops: make(map[core.TroopType]*troop, len(spec.Troops))}
	var errs error

	for name, ts := range spec.Troops {
		t := core.TroopType(name)
		tr := &troop{count: ts.Count, sides: make(map[core.Side][]Rule, 2)}
		if tr.count <= 0 {
			tr.count = 1
		}
		for _, side := range []struct {
			side  core.Side
			rules []ruleSpec
		}{{core.Front, ts.Side1}, {core.Back, ts.Side2}} {
			if side.rules == nil {
				errs = multierror.Append(errs, fmt.Errorf("%s %s: %w", t, side.side, ErrCatalogMissing))
				continue
			}
			rules, err := buildRules(side.rules)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s %s: %w", t, side.side, err))
				continue
			}
			tr.sides[side.side] = rules
		}
		c.troops[t] = tr
	}

	for _, name := range spec.Starting {
		t := core.TroopType(name)
		if _, ok := c.troops[t]; !ok {
			errs = multierror.Append(errs, fmt.Errorf("starting troop %s: %w", t, ErrCatalogMissing))
			continue
		}
		c.starting = append(c.starting, t)
	}
	if _, ok := c.troops[core.Duke]; !ok {
		errs = multierror.Append(errs, fmt.Errorf("%s: %w", core.Duke, ErrCatalogMissing))
	}
	if len(c.starting) == 0 {
		c.starting = []core.TroopType{core.Duke}
	}

	if errs != nil {
		return nil, errs
	}
	return c, nil
}

// buildRules converts authored squares into offsets and gives every
// COMMAND rule the full command region of its side.
func buildRules(specs []ruleSpec) ([]Rule, error) {
	rules := make([]Rule, 0, len(specs))
	var region []Offset
	for _, rs := range specs {
		off, err := parseSquare(rs.File, rs.Rank)
		if err != nil {
			return nil, err
		}
		kind, err := ParseKind(rs.Move)
		if err != nil {
			return nil, err
		}
		if kind == Command {
			region = append(region, off)
		}
		rules = append(rules, Rule{Offset: off, Kind: kind})
	}
	for i := range rules {
		if rules[i].Kind == Command {
			rules[i].Destinations = region
		}
	}
	return rules, nil
}

func parseSquare(file string, rank int) (Offset, error) {
	f := strings.ToLower(strings.TrimSpace(file))
	if len(f) != 1 || f[0] < 'a' || f[0] > 'e' || rank < 1 || rank > 5 {
		return Offset{}, fmt.Errorf("%s%d: %w", file, rank, ErrBadSquare)
	}
	off := Offset{DX: int(f[0]) - 'c', DY: rank - 3}
	if off == (Offset{}) {
		return Offset{}, fmt.Errorf("%s%d is the tile itself: %w", file, rank, ErrBadSquare)
	}
	return off, nil
}
