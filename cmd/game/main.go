package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hazelbrook/creekside/internal/game"
	"github.com/hazelbrook/creekside/internal/rewardclient"
	"github.com/hazelbrook/creekside/internal/rewardd"
)

// profiler is the optional startup-seeding surface both reward client
// flavours provide.
type profiler interface {
	Profile(ctx context.Context) (points, quotaRemaining int, err error)
}

func main() {
	var server string
	var angler string
	var seed int64
	var autofish bool
	flag.StringVar(&server, "server", "", "reward server base URL (empty runs the embedded service)")
	flag.StringVar(&angler, "angler", "local", "angler identity sent to the reward service")
	flag.Int64Var(&seed, "seed", 7, "village generation seed")
	flag.BoolVar(&autofish, "autofish", false, "start with the autofish rig enabled")
	flag.Parse()

	var svc game.RewardService
	if server == "" {
		local := rewardd.NewService(rewardd.DefaultConfig(), rewardd.NewMemoryStore(), seed)
		svc = rewardclient.NewEmbedded(local, angler)
	} else {
		svc = rewardclient.New(server, rewardclient.WithAngler(angler))
	}

	g := game.New(svc, seed)
	if p, ok := svc.(profiler); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		pts, quota, err := p.Profile(ctx)
		cancel()
		if err != nil {
			log.Printf("profile fetch failed, starting fresh: %v", err)
		} else {
			g.Engine().SeedProfile(pts, quota)
		}
	}
	if autofish {
		g.Engine().ToggleAutofish()
	}

	ebiten.SetWindowTitle("Creekside")
	ebiten.SetWindowSize(1008, 688)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
