package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/shirokuma-dev/riichi-engine/internal/ai"
	"github.com/shirokuma-dev/riichi-engine/internal/engine"
	"github.com/shirokuma-dev/riichi-engine/internal/event"
	"github.com/shirokuma-dev/riichi-engine/internal/gamelog"
	"github.com/shirokuma-dev/riichi-engine/internal/logger"
	"github.com/shirokuma-dev/riichi-engine/internal/scoring"
)

// maxSteps 防止极端牌谱下的死循环
const maxSteps = 100000

func main() {
	rounds := flag.Int("rounds", engine.DefaultMaxRounds, "打满多少局终局")
	seed := flag.Int64("seed", 0, "洗牌种子，0 为随机")
	logPath := flag.String("log", "", "终局后把 Tenhou 牌谱写入该文件")
	quiet := flag.Bool("quiet", false, "只输出终局结果")
	debuglog := flag.Bool("debuglog", false, "把调试日志写到 ~/.riichi-engine/debug.log")
	flag.Parse()

	if *debuglog {
		if err := logger.Init(); err != nil {
			log.Fatalf("初始化日志失败: %v", err)
		}
		defer logger.Close()
		fmt.Printf("调试日志写入 %s\n", logger.GetLogPath())
	}

	eng := engine.New(engine.Options{
		Names:     [4]string{"東", "南", "西", "北"},
		MaxRounds: *rounds,
		Delegate:  scoring.NewStandard(),
		Seed:      *seed,
	})
	reg := ai.NewRegistry(*seed)

	for step := 0; !eng.IsGameOver(); step++ {
		if step >= maxSteps {
			log.Println("达到步数上限，强制终局")
			eng.EndGame()
			break
		}
		if _, err := reg.AutoPlayTurn(eng, -1, ai.TypeSimple, nil); err != nil {
			log.Fatalf("对局推进失败: %v", err)
		}
		for _, ev := range eng.PopEvents() {
			if !*quiet {
				printEvent(ev)
			}
		}
	}

	st := eng.State()
	fmt.Println("=== 终局 ===")
	for i, p := range st.Players {
		fmt.Printf("%s: %d\n", p.Name, st.Scores()[i])
	}

	if *logPath != "" {
		record, err := gamelog.TenhouJSON(eng.History())
		if err != nil {
			log.Fatalf("牌谱投影失败: %v", err)
		}
		if err := os.WriteFile(*logPath, []byte(record), 0o644); err != nil {
			log.Fatalf("牌谱写入失败: %v", err)
		}
		fmt.Printf("牌谱已写入 %s\n", *logPath)
	}
}

func printEvent(ev event.Event) {
	switch e := ev.(type) {
	case event.StartKyoku:
		fmt.Printf("―― 第%d局 (庄家 %s, %d本场) ――\n", e.RoundNumber, e.Names[e.Dealer], e.Honba)
	case event.Discard:
		fmt.Printf("  %s 打 %s\n", seatName(e.PlayerIndex), e.Tile)
	case event.Meld:
		tiles := make([]string, 0, len(e.Meld.Tiles))
		for _, t := range e.Meld.Tiles {
			tiles = append(tiles, t.String())
		}
		fmt.Printf("  %s %s [%s]\n", seatName(e.PlayerIndex), e.Meld.Type, strings.Join(tiles, " "))
	case event.Riichi:
		fmt.Printf("  %s 立直!\n", seatName(e.PlayerIndex))
	case event.Tsumo:
		fmt.Printf("  %s 自摸 %s (%d番%d符 %d点) %s\n",
			seatName(e.PlayerIndex), e.Tile, e.Han, e.Fu, e.CostTotal, strings.Join(e.Yaku, " "))
	case event.Ron:
		fmt.Printf("  %s 荣和 %s← %s (%d番%d符 %d点) %s\n",
			seatName(e.PlayerIndex), seatName(e.FromPlayer), e.Tile, e.Han, e.Fu, e.CostTotal, strings.Join(e.Yaku, " "))
	case event.Ryukyoku:
		fmt.Printf("  流局 (%s)\n", e.Reason)
	case event.EndGame:
		fmt.Printf("对局结束 (%s)\n", e.Reason)
	}
}

func seatName(i int) string {
	return [4]string{"東", "南", "西", "北"}[i]
}
