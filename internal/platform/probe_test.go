package platform

import (
	"regexp"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/mcplat/internal/errors"
	"github.com/thoreinstein/mcplat/internal/host"
)

func fixed(name, version string, err error) Strategy {
	return Strategy{
		Name: name,
		Detect: func(host.Loader) (string, error) {
			return version, err
		},
	}
}

func TestFallback(t *testing.T) {
	tests := []struct {
		name        string
		strategies  []Strategy
		wantVersion string
		wantAbsent  bool
		wantErr     error
	}{
		{
			name:        "first strategy wins",
			strategies:  []Strategy{fixed("a", "1.0", nil), fixed("b", "2.0", nil)},
			wantVersion: "1.0",
		},
		{
			name:        "falls through on missing method",
			strategies:  []Strategy{fixed("a", "", host.ErrNoSuchMethod), fixed("b", "2.0", nil)},
			wantVersion: "2.0",
		},
		{
			name:        "falls through on missing class",
			strategies:  []Strategy{fixed("a", "", host.ErrClassNotFound), fixed("b", "2.0", nil)},
			wantVersion: "2.0",
		},
		{
			name:       "all absent",
			strategies: []Strategy{fixed("a", "", host.ErrClassNotFound), fixed("b", "", host.ErrNoSuchField)},
			wantAbsent: true,
		},
		{
			name:       "no strategies is absent",
			wantAbsent: true,
		},
		{
			name:       "integrity failure stops the chain",
			strategies: []Strategy{fixed("a", "", host.ErrInvocation), fixed("b", "2.0", nil)},
			wantErr:    host.ErrInvocation,
		},
		{
			name:       "null version stops the chain",
			strategies: []Strategy{fixed("a", "", ErrNoVersion), fixed("b", "2.0", nil)},
			wantErr:    ErrNoVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Fallback(tt.strategies...)(host.NewTable("empty"))
			switch {
			case tt.wantAbsent:
				require.Error(t, err)
				assert.True(t, host.IsAbsent(err), "want absence, got %v", err)
			case tt.wantErr != nil:
				require.Error(t, err)
				assert.False(t, host.IsAbsent(err))
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantVersion, v)
			}
		})
	}
}

func TestStrict(t *testing.T) {
	t.Run("missing class is still absence", func(t *testing.T) {
		_, err := Strict(fixed("a", "", host.ErrClassNotFound)).Detect(nil)
		assert.True(t, host.IsAbsent(err))
	})

	t.Run("missing member becomes integrity failure", func(t *testing.T) {
		_, err := Strict(fixed("a", "", errors.Wrap(host.ErrNoSuchField, "X.Y"))).Detect(nil)
		require.Error(t, err)
		assert.False(t, host.IsAbsent(err))
		assert.Contains(t, err.Error(), "required member missing")
	})

	t.Run("success passes through", func(t *testing.T) {
		v, err := Strict(fixed("a", "1.2", nil)).Detect(nil)
		require.NoError(t, err)
		assert.Equal(t, "1.2", v)
	})
}

func TestExtract(t *testing.T) {
	re := regexp.MustCompile(`\(MC: ([^)]+?)\)`)

	v, err := Extract(fixed("a", "git-Spigot-1 (MC: 1.8.8)", nil), re).Detect(nil)
	require.NoError(t, err)
	assert.Equal(t, "1.8.8", v)

	_, err = Extract(fixed("a", "garbage", nil), re).Detect(nil)
	require.Error(t, err)
	assert.False(t, host.IsAbsent(err))
	assert.Contains(t, err.Error(), "garbage")

	_, err = Extract(fixed("a", "", host.ErrNoSuchMethod), re).Detect(nil)
	assert.True(t, host.IsAbsent(err))
}

func TestStaticStrategies_ResultTypes(t *testing.T) {
	h := newHost(t, host.ClassDef{
		Name: "x.Host",
		Methods: map[string]host.Method{
			"str":    host.Const("1.0"),
			"null":   host.Const(nil),
			"empty":  host.Const(""),
			"number": host.Const(42),
			"obj":    host.Const(host.NewInstance("x.V", map[string]host.Method{"name": host.Const("2.0")})),
		},
		Fields: map[string]host.Field{
			"F": host.Const("3.0"),
		},
	})

	v, err := StaticCall("x.Host", "str").Detect(h)
	require.NoError(t, err)
	assert.Equal(t, "1.0", v)

	_, err = StaticCall("x.Host", "null").Detect(h)
	assert.True(t, errors.Is(err, ErrNoVersion))

	_, err = StaticCall("x.Host", "empty").Detect(h)
	assert.True(t, errors.Is(err, ErrEmptyVersion))
	assert.False(t, host.IsAbsent(err))

	_, err = StaticCall("x.Host", "number").Detect(h)
	require.Error(t, err)
	assert.False(t, host.IsAbsent(err))

	v, err = StaticCallThen("x.Host", "obj", "name").Detect(h)
	require.NoError(t, err)
	assert.Equal(t, "2.0", v)

	_, err = StaticCallThen("x.Host", "str", "name").Detect(h)
	require.Error(t, err, "a string is not an object")
	assert.False(t, host.IsAbsent(err))

	_, err = StaticCallThen("x.Host", "obj", "missing").Detect(h)
	assert.True(t, host.IsAbsent(err))

	v, err = StaticField("x.Host", "F").Detect(h)
	require.NoError(t, err)
	assert.Equal(t, "3.0", v)

	_, err = StaticField("x.Missing", "F").Detect(h)
	assert.True(t, errors.Is(err, host.ErrClassNotFound))
}

func TestProbe_RunsOnce(t *testing.T) {
	var calls atomic.Int32
	detect := func(host.Loader) (string, error) {
		calls.Add(1)
		return "1.0", nil
	}
	p := NewProbe("test", host.NewTable("empty"), detect)

	assert.Equal(t, Unprobed, p.State())

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := p.Run()
			assert.Equal(t, Supported, r.State)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, Supported, p.State())
}

func TestProbe_Outcomes(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantState State
		wantErr   bool
	}{
		{name: "absent", err: host.ErrClassNotFound, wantState: Unsupported},
		{name: "no version", err: ErrNoVersion, wantState: Unsupported},
		{name: "empty version", err: ErrEmptyVersion, wantState: Unsupported, wantErr: true},
		{name: "integrity", err: host.ErrIllegalAccess, wantState: Unsupported, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProbe("test", nil, func(host.Loader) (string, error) { return "", tt.err })
			r := p.Run()
			assert.Equal(t, tt.wantState, r.State)
			assert.Empty(t, r.Version)
			if tt.wantErr {
				require.Error(t, r.Err)
				assert.True(t, errors.Is(r.Err, ErrIntegrity))
				assert.True(t, errors.Is(r.Err, tt.err), "cause should be preserved")
				assert.Contains(t, r.Err.Error(), "failed to get test version")
			} else {
				assert.NoError(t, r.Err)
			}
		})
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unprobed", Unprobed.String())
	assert.Equal(t, "supported", Supported.String())
	assert.Equal(t, "unsupported", Unsupported.String())
	assert.Equal(t, "unknown", State(99).String())

	text, err := Supported.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "supported", string(text))
}
