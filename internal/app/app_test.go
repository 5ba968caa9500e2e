package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/arcstr"
	"go.trai.ch/arcstr/internal/app"
	"go.trai.ch/arcstr/internal/core/domain"
	"go.trai.ch/arcstr/internal/core/ports/mocks"
	"go.trai.ch/arcstr/internal/engine/lexer"
	"go.trai.ch/arcstr/internal/engine/stress"
	"go.uber.org/mock/gomock"
	"gopkg.in/yaml.v3"
)

type fixture struct {
	app    *app.App
	loader *mocks.MockConfigLoader
	reader *mocks.MockSourceReader
	logger *mocks.MockLogger
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := fixture{
		loader: mocks.NewMockConfigLoader(ctrl),
		reader: mocks.NewMockSourceReader(ctrl),
		logger: mocks.NewMockLogger(ctrl),
	}
	f.app = app.New(f.loader, f.reader, lexer.New(), stress.NewRunner(), f.logger)
	return f
}

// expectSource makes the reader return a fresh copy of content and hands back a clone
// so the test can observe the count after the app is done.
func expectSource(t *testing.T, f fixture, path, content string) arcstr.ArcStr {
	t.Helper()
	src, err := arcstr.New(content)
	require.NoError(t, err)
	observer := src.Clone()
	f.reader.EXPECT().Read(path).Return(src, nil)
	return observer
}

func TestApp_Lex_Text(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(domain.DefaultConfig(), nil)
	observer := expectSource(t, f, "main.src", "x = 1 // one\n")
	defer observer.Release()

	var out bytes.Buffer
	err := f.app.Lex(context.Background(), "main.src", app.LexOptions{}, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, `"x"`)
	assert.Contains(t, text, `"// one"`)
	assert.Contains(t, text, "main.src: 13 bytes, 4 tokens")
	assert.Contains(t, text, "6 references while lexed")

	n, _ := observer.StrongCount()
	assert.Equal(t, uint(1), n, "app must release every reference it took")
}

func TestApp_Lex_JSON(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(domain.DefaultConfig(), nil)
	observer := expectSource(t, f, "a.src", "a b")
	defer observer.Release()

	keep := true
	var out bytes.Buffer
	err := f.app.Lex(context.Background(), "a.src", app.LexOptions{Format: "json", KeepWhitespace: &keep}, &out)
	require.NoError(t, err)

	var report struct {
		Summary struct {
			Tokens   int            `json:"tokens"`
			Kinds    map[string]int `json:"kinds"`
			BaseRefs uint           `json:"base_refs"`
		} `json:"summary"`
		Tokens []struct {
			Kind string `json:"kind"`
			Text string `json:"text"`
		} `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))

	assert.Equal(t, 3, report.Summary.Tokens)
	assert.Equal(t, map[string]int{"ident": 2, "space": 1}, report.Summary.Kinds)
	assert.Equal(t, uint(5), report.Summary.BaseRefs)
	require.Len(t, report.Tokens, 3)
	assert.Equal(t, "space", report.Tokens[1].Kind)
	assert.Equal(t, " ", report.Tokens[1].Text)
}

func TestApp_Lex_YAMLAndCBOR(t *testing.T) {
	for _, format := range []string{"yaml", "cbor"} {
		t.Run(format, func(t *testing.T) {
			f := newFixture(t)
			f.loader.EXPECT().Load(".").Return(domain.DefaultConfig(), nil)
			observer := expectSource(t, f, "k.src", "key")
			defer observer.Release()

			var out bytes.Buffer
			require.NoError(t, f.app.Lex(context.Background(), "k.src", app.LexOptions{Format: format}, &out))

			var report map[string]any
			if format == "yaml" {
				require.NoError(t, yaml.Unmarshal(out.Bytes(), &report))
			} else {
				require.NoError(t, cbor.Unmarshal(out.Bytes(), &report))
			}
			tokens, ok := report["tokens"].([]any)
			require.True(t, ok)
			require.Len(t, tokens, 1)
		})
	}
}

func TestApp_Lex_ConfigFormat(t *testing.T) {
	f := newFixture(t)
	cfg := domain.DefaultConfig()
	cfg.Lex.Format = domain.FormatJSON
	f.loader.EXPECT().Load(".").Return(cfg, nil)
	observer := expectSource(t, f, "c.src", "c")
	defer observer.Release()

	var out bytes.Buffer
	require.NoError(t, f.app.Lex(context.Background(), "c.src", app.LexOptions{}, &out))
	assert.True(t, json.Valid(out.Bytes()))
}

func TestApp_Lex_Errors(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		f := newFixture(t)
		err := f.app.Lex(context.Background(), "", app.LexOptions{}, &bytes.Buffer{})
		assert.True(t, errors.Is(err, domain.ErrMissingSource))
	})

	t.Run("config error", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load(".").Return(domain.Config{}, domain.ErrInvalidConfig)
		err := f.app.Lex(context.Background(), "x", app.LexOptions{}, &bytes.Buffer{})
		assert.True(t, errors.Is(err, domain.ErrInvalidConfig))
	})

	t.Run("unknown format", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load(".").Return(domain.DefaultConfig(), nil)
		err := f.app.Lex(context.Background(), "x", app.LexOptions{Format: "xml"}, &bytes.Buffer{})
		assert.True(t, errors.Is(err, domain.ErrUnknownFormat))
	})

	t.Run("read error", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load(".").Return(domain.DefaultConfig(), nil)
		f.reader.EXPECT().Read("x").Return(arcstr.ArcStr{}, arcstr.ErrInvalidUTF8)
		err := f.app.Lex(context.Background(), "x", app.LexOptions{}, &bytes.Buffer{})
		assert.True(t, errors.Is(err, arcstr.ErrInvalidUTF8))
	})

	t.Run("lex error", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load(".").Return(domain.DefaultConfig(), nil)
		observer := expectSource(t, f, "s.src", `"open`)
		defer observer.Release()

		err := f.app.Lex(context.Background(), "s.src", app.LexOptions{}, &bytes.Buffer{})
		assert.True(t, errors.Is(err, domain.ErrUnterminatedString))
		n, _ := observer.StrongCount()
		assert.Equal(t, uint(1), n)
	})
}

func TestApp_Stress(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(domain.DefaultConfig(), nil)
	f.logger.EXPECT().Info(gomock.Any())

	var out bytes.Buffer
	err := f.app.Stress(context.Background(), app.StressOptions{
		Goroutines: 2,
		Iterations: 100,
		Payload:    "override",
		Format:     "json",
	}, &out)
	require.NoError(t, err)

	var report domain.StressReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 2, report.Goroutines)
	assert.Equal(t, 100, report.Iterations)
	assert.Equal(t, len("override"), report.PayloadBytes)
	assert.Equal(t, uint(1), report.FinalCount)
}

func TestApp_Stress_Text(t *testing.T) {
	f := newFixture(t)
	cfg := domain.DefaultConfig()
	cfg.Stress.Goroutines = 1
	cfg.Stress.Iterations = 10
	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.logger.EXPECT().Info("stress: 1 goroutines x 10 iterations")

	var out bytes.Buffer
	require.NoError(t, f.app.Stress(context.Background(), app.StressOptions{}, &out))
	assert.Contains(t, out.String(), "final count:  1")
}

func TestApp_Stress_InvalidPayload(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(domain.DefaultConfig(), nil)

	err := f.app.Stress(context.Background(), app.StressOptions{Payload: "\xff"}, &bytes.Buffer{})
	assert.True(t, errors.Is(err, arcstr.ErrInvalidUTF8))
}

func TestApp_WithWorkDir(t *testing.T) {
	f := newFixture(t)
	f.app.WithWorkDir("/tmp/project")
	f.loader.EXPECT().Load("/tmp/project").Return(domain.Config{}, domain.ErrInvalidConfig)

	err := f.app.Stress(context.Background(), app.StressOptions{}, &bytes.Buffer{})
	assert.True(t, errors.Is(err, domain.ErrInvalidConfig))
}

// loadedConfig returns a config whose payload is a dynamic string, as the loader builds
// it from arcstr.yaml, plus a clone to observe its count.
func loadedConfig(t *testing.T) (domain.Config, arcstr.ArcStr) {
	t.Helper()
	payload, err := arcstr.New("from arcstr.yaml")
	require.NoError(t, err)
	cfg := domain.DefaultConfig()
	cfg.Stress.Goroutines = 1
	cfg.Stress.Iterations = 5
	cfg.Stress.Payload = payload
	return cfg, payload.Clone()
}

func TestApp_Stress_ReleasesConfigPayload(t *testing.T) {
	for _, override := range []string{"", "flag payload"} {
		t.Run("override="+override, func(t *testing.T) {
			f := newFixture(t)
			cfg, observer := loadedConfig(t)
			defer observer.Release()
			f.loader.EXPECT().Load(".").Return(cfg, nil)
			f.logger.EXPECT().Info(gomock.Any())

			before := arcstr.Stats()
			err := f.app.Stress(context.Background(), app.StressOptions{Payload: override}, &bytes.Buffer{})
			require.NoError(t, err)

			n, _ := observer.StrongCount()
			assert.Equal(t, uint(1), n, "the loaded payload must be released")
			assert.Equal(t, before.LiveBlocks, arcstr.Stats().LiveBlocks, "no block allocated by the run may survive it")
		})
	}
}

func TestApp_Lex_ReleasesConfigPayload(t *testing.T) {
	f := newFixture(t)
	cfg, observer := loadedConfig(t)
	defer observer.Release()
	f.loader.EXPECT().Load(".").Return(cfg, nil)
	source := expectSource(t, f, "p.src", "p")
	defer source.Release()

	require.NoError(t, f.app.Lex(context.Background(), "p.src", app.LexOptions{}, &bytes.Buffer{}))

	n, _ := observer.StrongCount()
	assert.Equal(t, uint(1), n)
}
