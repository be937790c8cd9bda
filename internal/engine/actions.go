package engine

import (
	"slices"
	"sort"

	"github.com/shirokuma-dev/riichi-engine/internal/event"
	"github.com/shirokuma-dev/riichi-engine/internal/player"
	"github.com/shirokuma-dev/riichi-engine/internal/scoring"
	"github.com/shirokuma-dev/riichi-engine/internal/tile"
)

// 动作名（协议层与 AI 使用同一套）
const (
	ActionDraw    = "draw"
	ActionDiscard = "discard"
	ActionSkip    = "skip"
	ActionChi     = "chi"
	ActionPon     = "pon"
	ActionKan     = "kan"
	ActionRiichi  = "riichi"
	ActionTsumo   = "tsumo"
	ActionRon     = "ron"
)

// actionsCache 四家合法动作缓存。和牌探测要走算点委托，
// 状态不变时重复询问直接命中缓存，任何事件发出即失效。
type actionsCache struct {
	valid   bool
	perSeat [4][]string
}

// AllowedActions 座位当前的全部合法动作（字典序）
func (e *Engine) AllowedActions(seat int) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.computeActionsLocked()
	return slices.Clone(e.actions.perSeat[seat])
}

// AllAllowedActions 四家各自的合法动作
func (e *Engine) AllAllowedActions() [4][]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.computeActionsLocked()
	var out [4][]string
	for i := range out {
		out[i] = slices.Clone(e.actions.perSeat[i])
	}
	return out
}

func (e *Engine) computeActionsLocked() {
	if e.actions.valid {
		return
	}
	for seat := 0; seat < 4; seat++ {
		e.actions.perSeat[seat] = e.actionsForLocked(seat)
	}
	e.actions.valid = true
}

func (e *Engine) actionsForLocked(seat int) []string {
	s := e.state
	if e.gameOver {
		return nil
	}
	p := s.Players[seat]

	if len(s.WaitingForClaims) > 0 {
		if s.LastDiscard == nil || !s.claimOwed(seat) {
			return nil
		}
		claimed := *s.LastDiscard
		acts := []string{ActionSkip}
		if !p.Riichi {
			if p.Hand.CountOf(claimed) >= 2 {
				acts = append(acts, ActionPon)
			}
			if p.Hand.CountOf(claimed) >= 3 {
				acts = append(acts, ActionKan)
			}
			if len(e.chiOptionsLocked(seat)) > 0 {
				acts = append(acts, ActionChi)
			}
		}
		if e.winsOn(p, claimed, false) {
			acts = append(acts, ActionRon)
		}
		sort.Strings(acts)
		return acts
	}

	if seat != s.CurrentPlayer {
		return nil
	}
	if len(p.Hand.Tiles) == 13-3*len(p.Hand.Melds) {
		return []string{ActionDraw}
	}
	if len(p.Hand.Tiles)%3 != 2 {
		return nil
	}

	acts := []string{ActionDiscard, ActionSkip}
	if kanAvailable(p) {
		acts = append(acts, ActionKan)
	}
	if !p.Riichi && p.Hand.IsClosed() && tenpaiNow(p) {
		acts = append(acts, ActionRiichi)
	}
	if last, ok := p.LastDrawn(); ok {
		res, err := e.delegate.Evaluate(p.Hand.Tiles, p.Hand.Melds, last, scoring.WinContext{
			IsTsumo:   true,
			IsRiichi:  p.Riichi,
			IsIppatsu: p.IppatsuAvailable,
			SeatWind:  p.SeatWind,
			RoundWind: s.RoundWind(),
		})
		if err == nil && res != nil {
			acts = append(acts, ActionTsumo)
		}
	}
	sort.Strings(acts)
	return acts
}

// winsOn 荣和探测：把打牌并入手牌后能否成立和牌
func (e *Engine) winsOn(p *player.Player, t tile.Tile, tsumo bool) bool {
	concealed := make([]tile.Tile, 0, len(p.Hand.Tiles)+1)
	concealed = append(concealed, p.Hand.Tiles...)
	concealed = append(concealed, t)
	res, err := e.delegate.Evaluate(concealed, p.Hand.Melds, t, scoring.WinContext{
		IsTsumo:   tsumo,
		IsRiichi:  p.Riichi,
		IsIppatsu: p.IppatsuAvailable,
		SeatWind:  p.SeatWind,
		RoundWind: e.state.RoundWind(),
	})
	return err == nil && res != nil
}

// kanAvailable 回合内是否可开暗杠或加杠
func kanAvailable(p *player.Player) bool {
	counts := map[tile.Tile]int{}
	for _, t := range p.Hand.Tiles {
		counts[t]++
	}
	for t, n := range counts {
		if n >= 4 || p.Hand.MeldOf(player.Pon, t) >= 0 {
			return true
		}
	}
	return false
}

// ChiOptions 吃的可选组合：返回手牌中能与最近打牌组成顺子的牌对
func (e *Engine) ChiOptions(seat int) [][]tile.Tile {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chiOptionsLocked(seat)
}

func (e *Engine) chiOptionsLocked(seat int) [][]tile.Tile {
	s := e.state
	if s.LastDiscard == nil || !s.claimOwed(seat) {
		return nil
	}
	claimed := *s.LastDiscard
	if (seat-s.LastDiscardPlayer+4)%4 != 1 || !claimed.IsNumbered() {
		return nil
	}
	p := s.Players[seat]

	var out [][]tile.Tile
	pairs := [3][2]int{
		{claimed.Value - 2, claimed.Value - 1},
		{claimed.Value - 1, claimed.Value + 1},
		{claimed.Value + 1, claimed.Value + 2},
	}
	for _, pr := range pairs {
		if pr[0] < 1 || pr[1] > 9 {
			continue
		}
		a := tile.Tile{Suit: claimed.Suit, Value: pr[0]}
		b := tile.Tile{Suit: claimed.Suit, Value: pr[1]}
		if p.Hand.CountOf(a) > 0 && p.Hand.CountOf(b) > 0 {
			out = append(out, []tile.Tile{a, b})
		}
	}
	return out
}

// NextActions 返回下一个需要表态的座位及其动作。
// 当前玩家只剩摸牌时自动代摸并继续，直到出现真正的分支。
func (e *Engine) NextActions() (int, []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for {
		if e.gameOver {
			return -1, nil
		}
		s := e.state
		if len(s.WaitingForClaims) > 0 {
			seat := s.WaitingForClaims[0]
			e.computeActionsLocked()
			return seat, slices.Clone(e.actions.perSeat[seat])
		}
		seat := s.CurrentPlayer
		e.computeActionsLocked()
		acts := e.actions.perSeat[seat]
		if len(acts) == 1 && acts[0] == ActionDraw {
			if _, err := e.drawLocked(seat); err != nil {
				return seat, slices.Clone(acts)
			}
			continue
		}
		return seat, slices.Clone(acts)
	}
}

// RecordNextActions 把行动提示写入事件日志，与上一条重复时不写
func (e *Engine) RecordNextActions(seat int, actions []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if last, ok := e.log.Last(); ok {
		if na, ok := last.(event.NextActions); ok && na.PlayerIndex == seat && slices.Equal(na.Actions, actions) {
			return
		}
	}
	e.log.Append(event.NextActions{PlayerIndex: seat, Actions: slices.Clone(actions)})
}
