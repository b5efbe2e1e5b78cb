package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/mentorpath/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

// Env vars persist across goconvey branch re-runs, so each precedence
// scenario gets its own test function.

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file and no env overrides", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then the defaults apply", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.TopNDefault, ShouldEqual, 5)
			So(cfg.SimilarLevelMin, ShouldAlmostEqual, 0.75, 1e-9)
			So(cfg.AspirationalMax, ShouldAlmostEqual, 0.4, 1e-9)
			So(cfg.DurationConstant, ShouldAlmostEqual, 10, 1e-9)
			So(cfg.ScoreConcurrency, ShouldBeGreaterThan, 0)
		})
	})
}

func TestLoadFileLayer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":7070\"\nmax_phases: 3\nsimilar_level_min: 0.8\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MENTORPATH_CONFIG", path)

	Convey("Given a YAML file override", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then file values win over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.MaxPhases, ShouldEqual, 3)
			So(cfg.SimilarLevelMin, ShouldAlmostEqual, 0.8, 1e-9)
			// Untouched keys keep their defaults.
			So(cfg.TopNMax, ShouldEqual, 25)
		})
	})
}

func TestLoadEnvLayer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":7070\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MENTORPATH_CONFIG", path)
	t.Setenv("MENTORPATH_ADDR", ":6060")
	t.Setenv("MENTORPATH_TOP_N_DEFAULT", "3")

	Convey("Given env overrides on top of a file", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then env is the highest layer", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
			So(cfg.TopNDefault, ShouldEqual, 3)
		})
	})
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("MENTORPATH_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	Convey("Given a bogus config file path", t, func() {
		_, err := config.Load(context.Background())

		Convey("Then the load sentinel surfaces", func() {
			So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
		})
	})
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("MENTORPATH_MAX_PHASES", "0")

	Convey("Given an invalid merged config", t, func() {
		_, err := config.Load(context.Background())

		Convey("Then validation rejects it", func() {
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
