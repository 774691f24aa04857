package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/graphgen/internal/config"
	"github.com/xkilldash9x/graphgen/internal/dataset"
)

func TestComponentFactoryCreate(t *testing.T) {
	t.Run("should build only the CSV writer by default", func(t *testing.T) {
		dir := t.TempDir()
		cfg := &config.Config{Output: config.OutputConfig{Dir: dir, Workers: 2}}

		components, err := NewComponentFactory().Create(context.Background(), cfg, zaptest.NewLogger(t))
		require.NoError(t, err)
		defer components.Shutdown(context.Background())

		require.Len(t, components.Sinks, 1)
		writer, ok := components.Sinks[0].(*dataset.CSVWriter)
		require.True(t, ok)
		assert.Equal(t, dir, writer.Dir())
		assert.Nil(t, components.DBPool)
		assert.Nil(t, components.Bolt)
	})

	t.Run("should fail when Memgraph is unreachable", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		cfg := &config.Config{
			Output:   config.OutputConfig{Dir: t.TempDir(), Workers: 1},
			Memgraph: config.MemgraphConfig{URI: "bolt://127.0.0.1:1", BatchSize: 10},
		}

		components, err := NewComponentFactory().Create(ctx, cfg, zaptest.NewLogger(t))
		require.Error(t, err)
		assert.Nil(t, components, "partially built components are shut down and dropped")
	})
}
