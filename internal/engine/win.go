package engine

import (
	"fmt"

	"github.com/shirokuma-dev/riichi-engine/internal/apperrors"
	"github.com/shirokuma-dev/riichi-engine/internal/event"
	"github.com/shirokuma-dev/riichi-engine/internal/scoring"
	"github.com/shirokuma-dev/riichi-engine/internal/tile"
)

// DeclareRiichi 立直宣言：门清听牌扣 1000 点供托，
// 之后每次摸牌都强制摸切。四家立直即途中流局。
func (e *Engine) DeclareRiichi(seat int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.state
	if e.gameOver {
		return apperrors.ErrGameOver
	}
	p := s.Players[seat]
	if p.Riichi {
		return apperrors.Invalid("riichi: already declared")
	}
	if !p.Hand.IsClosed() {
		return apperrors.Invalid("riichi: hand is open")
	}
	if !tenpaiNow(p) {
		return apperrors.Invalid("riichi: hand is not tenpai")
	}

	p.Score -= riichiBet
	p.Riichi = true
	p.MustTsumogiri = true
	s.RiichiSticks++
	e.riichiPending = seat
	e.emit(event.Riichi{PlayerIndex: seat, Score: p.Score, RiichiSticks: s.RiichiSticks})

	all := true
	for _, q := range s.Players {
		if !q.Riichi {
			all = false
			break
		}
	}
	if all {
		e.resolveRyukyokuLocked(event.ReasonFourRiichi)
	}
	return nil
}

// DeclareTsumo 自摸和牌。t 必须在手牌中；委托判定非和牌形时
// 动作被拒绝且状态不变，算点出错则上抛 ErrScoring。
func (e *Engine) DeclareTsumo(seat int, t tile.Tile) (*scoring.WinResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.state
	if e.gameOver {
		return nil, apperrors.ErrGameOver
	}
	p := s.Players[seat]
	if p.Hand.IndexOf(t) < 0 {
		return nil, apperrors.Invalid("tsumo: tile %s not in hand", t)
	}
	if len(p.Hand.Tiles)%3 != 2 {
		return nil, apperrors.Invalid("tsumo: hand has %d tiles", len(p.Hand.Tiles))
	}

	res, err := e.delegate.Evaluate(p.Hand.Tiles, p.Hand.Melds, t, scoring.WinContext{
		IsTsumo:   true,
		IsRiichi:  p.Riichi,
		IsIppatsu: p.IppatsuAvailable,
		SeatWind:  p.SeatWind,
		RoundWind: s.RoundWind(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrScoring, err)
	}
	if res == nil {
		return nil, apperrors.Invalid("tsumo: not a winning hand")
	}

	var ura []tile.Tile
	if p.Riichi {
		ura = s.Wall.UraIndicators()
	}
	e.settleTsumoLocked(seat, res)
	e.emit(event.Tsumo{
		PlayerIndex:   seat,
		Tile:          t,
		Han:           res.Han,
		Fu:            res.Fu,
		CostTotal:     res.CostTotal,
		Yaku:          res.Yaku,
		Scores:        s.Scores(),
		UraIndicators: ura,
	})

	winner := seat
	e.advanceLocked(&winner, seat == s.Dealer)
	return res, nil
}

// DeclareRon 荣和最近一张打牌。只有鸣牌窗口内的座位可以荣和。
func (e *Engine) DeclareRon(seat int, t tile.Tile) (*scoring.WinResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.state
	if e.gameOver {
		return nil, apperrors.ErrGameOver
	}
	if s.LastDiscard == nil || !s.claimOwed(seat) {
		return nil, apperrors.Invalid("ron: no claimable discard")
	}
	if t != *s.LastDiscard {
		return nil, apperrors.Invalid("ron: tile %s does not match the discard %s", t, *s.LastDiscard)
	}

	p := s.Players[seat]
	concealed := make([]tile.Tile, 0, len(p.Hand.Tiles)+1)
	concealed = append(concealed, p.Hand.Tiles...)
	concealed = append(concealed, t)
	res, err := e.delegate.Evaluate(concealed, p.Hand.Melds, t, scoring.WinContext{
		IsRiichi:  p.Riichi,
		IsIppatsu: p.IppatsuAvailable,
		SeatWind:  p.SeatWind,
		RoundWind: s.RoundWind(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrScoring, err)
	}
	if res == nil {
		return nil, apperrors.Invalid("ron: not a winning hand")
	}

	from := s.LastDiscardPlayer
	p.Hand.Add(t)
	s.WaitingForClaims = nil
	s.LastDiscard = nil
	s.LastDiscardPlayer = -1

	var ura []tile.Tile
	if p.Riichi {
		ura = s.Wall.UraIndicators()
	}
	e.settleRonLocked(seat, from, res)
	e.emit(event.Ron{
		PlayerIndex:   seat,
		FromPlayer:    from,
		Tile:          t,
		Han:           res.Han,
		Fu:            res.Fu,
		CostTotal:     res.CostTotal,
		Yaku:          res.Yaku,
		Scores:        s.Scores(),
		UraIndicators: ura,
	})

	winner := seat
	e.advanceLocked(&winner, seat == s.Dealer)
	return res, nil
}

// ceilShare 将 total/div 向上取整到百位（自摸分摊）
func ceilShare(total, div int) int {
	return (total + div*100 - 1) / (div * 100) * 100
}

// settleTsumoLocked 自摸点数移动：庄家和则三家均摊，闲家和则
// 庄家付一半、其余各付四分之一，每家另付本场 100 点。
// 和牌者恰好收到各家付出之和与全部供托，点数总量守恒。
func (e *Engine) settleTsumoLocked(winner int, res *scoring.WinResult) {
	s := e.state
	total := 0
	for i, p := range s.Players {
		if i == winner {
			continue
		}
		var share int
		switch {
		case winner == s.Dealer:
			share = ceilShare(res.CostTotal, 3)
		case i == s.Dealer:
			share = ceilShare(res.CostTotal, 2)
		default:
			share = ceilShare(res.CostTotal, 4)
		}
		pay := share + 100*s.Honba
		p.Score -= pay
		total += pay
	}
	s.Players[winner].Score += total + riichiBet*s.RiichiSticks
	s.RiichiSticks = 0
}

// settleRonLocked 荣和点数移动：放铳者付全额加本场 300 点
func (e *Engine) settleRonLocked(winner, from int, res *scoring.WinResult) {
	s := e.state
	pay := res.CostTotal + 300*s.Honba
	s.Players[from].Score -= pay
	s.Players[winner].Score += pay + riichiBet*s.RiichiSticks
	s.RiichiSticks = 0
}
