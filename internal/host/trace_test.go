package host

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/mcplat/internal/logging"
)

func TestTraced(t *testing.T) {
	tbl := NewTable("server")
	tbl.MustDefine(ClassDef{
		Name:    "org.bukkit.Bukkit",
		Methods: map[string]Method{"getVersion": Const("x")},
	})

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: logging.LevelTrace}))
	l := Traced(tbl, logger)
	assert.Equal(t, "server", l.Name())

	class, err := l.LoadClass("org.bukkit.Bukkit")
	require.NoError(t, err)
	_, err = class.Method("getMinecraftVersion")
	assert.ErrorIs(t, err, ErrNoSuchMethod)

	v, err := Call(class, "getVersion")
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	_, err = l.LoadClass("net.minecraft.SharedConstants")
	assert.ErrorIs(t, err, ErrClassNotFound)

	out := buf.String()
	assert.Contains(t, out, `msg="load class" loader=server class=org.bukkit.Bukkit`)
	assert.Contains(t, out, "member=getMinecraftVersion absent=true")
	assert.Contains(t, out, "member=getVersion")
	assert.Contains(t, out, "class=net.minecraft.SharedConstants absent=true")
}

func TestTraced_DisabledReturnsLoader(t *testing.T) {
	tbl := NewTable("server")
	assert.Same(t, tbl, Traced(tbl, nil))
	assert.Same(t, tbl, Traced(tbl, logging.NewDiscard()))
}
