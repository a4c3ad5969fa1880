package costcache_test

import (
	"context"
	"fmt"
	costcache "github.com/Borislavv/go-cost-cache"
	"github.com/Borislavv/go-cost-cache/config"
	"github.com/Borislavv/go-cost-cache/model"
	"io"
	"log/slog"
)

type mesh struct {
	name string
}

func (m *mesh) Dispose() {
	fmt.Println("dispose", m.name)
}

func Example() {
	cfg := &config.Cache{DB: config.DBCfg{Capacity: 100}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c := costcache.New[*mesh](context.Background(), cfg, logger)

	_ = c.Add(model.CoordsKey(0, 0, 0), &mesh{name: "a"}, 40, nil)
	_ = c.Add(model.CoordsKey(0, 0, 1), &mesh{name: "b"}, 40, nil)
	_ = c.Add(model.CoordsKey(0, 0, 2), &mesh{name: "c"}, 40, nil)

	if m, ok := c.Get(model.CoordsKey(0, 0, 1)); ok {
		fmt.Println("hit", m.name)
	}
	fmt.Println("cost", c.Cost())

	_ = c.Close()
	// Output:
	// dispose a
	// hit b
	// cost 80
	// dispose c
	// dispose b
}
