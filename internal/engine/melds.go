package engine

import (
	"sort"

	"github.com/shirokuma-dev/riichi-engine/internal/apperrors"
	"github.com/shirokuma-dev/riichi-engine/internal/event"
	"github.com/shirokuma-dev/riichi-engine/internal/player"
	"github.com/shirokuma-dev/riichi-engine/internal/tile"
)

// clearIppatsuLocked 任何鸣牌都打断所有人的一发
func (e *Engine) clearIppatsuLocked() {
	for _, p := range e.state.Players {
		p.IppatsuAvailable = false
	}
}

// claimMeldLocked 鸣走最近一张打牌：从打出者牌河移除，关闭窗口，
// 行动权转移到鸣牌者
func (e *Engine) claimMeldLocked(seat int) {
	s := e.state
	discarder := s.Players[s.LastDiscardPlayer]
	discarder.River = discarder.River[:len(discarder.River)-1]

	s.WaitingForClaims = nil
	s.LastDiscard = nil
	s.LastDiscardPlayer = -1
	s.CurrentPlayer = seat
	e.clearIppatsuLocked()
	e.emit(event.ClaimsClosed{})
}

// splitClaimTiles 从动作给出的牌中扣除一张被鸣的打牌，
// 返回需要从手牌拿出的部分。允许调用方传含打牌或不含打牌两种形式。
func splitClaimTiles(tiles []tile.Tile, claimed tile.Tile) []tile.Tile {
	out := make([]tile.Tile, 0, len(tiles))
	removed := false
	for _, t := range tiles {
		if !removed && t == claimed {
			removed = true
			continue
		}
		out = append(out, t)
	}
	if !removed {
		return append([]tile.Tile{}, tiles...)
	}
	return out
}

// CallChi 吃上家打牌组成顺子。tiles 为整组（含打牌）或手牌中的两张。
func (e *Engine) CallChi(seat int, tiles []tile.Tile) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.state
	if e.gameOver {
		return apperrors.ErrGameOver
	}
	if s.LastDiscard == nil || !s.claimOwed(seat) {
		return apperrors.Invalid("chi: no claimable discard")
	}
	claimed := *s.LastDiscard
	calledFrom := (seat - s.LastDiscardPlayer + 4) % 4
	if calledFrom != 1 {
		return apperrors.Invalid("chi: only the left player's discard can be called")
	}
	if !claimed.IsNumbered() {
		return apperrors.Invalid("chi: %s cannot form a run", claimed)
	}

	handPart := splitClaimTiles(tiles, claimed)
	if len(handPart) != 2 {
		return apperrors.Invalid("chi: expected two hand tiles, got %d", len(handPart))
	}
	a, b := handPart[0], handPart[1]
	if a.Value > b.Value {
		a, b = b, a
	}
	if a.Suit != claimed.Suit || b.Suit != claimed.Suit {
		return apperrors.Invalid("chi: tiles must match the discard's suit")
	}
	values := []int{a.Value, b.Value, claimed.Value}
	sort.Ints(values)
	if values[1] != values[0]+1 || values[2] != values[1]+1 {
		return apperrors.Invalid("chi: %s %s do not complete a run with %s", a, b, claimed)
	}
	p := s.Players[seat]
	if a == b {
		if p.Hand.CountOf(a) < 2 {
			return apperrors.Invalid("chi: tiles not in hand")
		}
	} else if p.Hand.CountOf(a) < 1 || p.Hand.CountOf(b) < 1 {
		return apperrors.Invalid("chi: tiles not in hand")
	}

	p.Hand.Remove(a)
	p.Hand.Remove(b)
	e.claimMeldLocked(seat)

	idx := 0
	from := calledFrom
	meld := player.Meld{
		Tiles:       []tile.Tile{claimed, a, b},
		Type:        player.Chi,
		CalledIndex: &idx,
		CalledFrom:  &from,
	}
	p.Hand.Melds = append(p.Hand.Melds, meld)
	e.emit(event.Meld{PlayerIndex: seat, Meld: meld})
	return nil
}

// CallPon 碰最近一张打牌组成刻子
func (e *Engine) CallPon(seat int, tiles []tile.Tile) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.state
	if e.gameOver {
		return apperrors.ErrGameOver
	}
	if s.LastDiscard == nil || !s.claimOwed(seat) {
		return apperrors.Invalid("pon: no claimable discard")
	}
	claimed := *s.LastDiscard
	for _, t := range tiles {
		if t != claimed {
			return apperrors.Invalid("pon: tile %s does not match the discard %s", t, claimed)
		}
	}
	p := s.Players[seat]
	if p.Hand.CountOf(claimed) < 2 {
		return apperrors.Invalid("pon: need two matching tiles in hand")
	}
	calledFrom := (seat - s.LastDiscardPlayer + 4) % 4

	p.Hand.RemoveAll(claimed, 2)
	e.claimMeldLocked(seat)

	// 被鸣牌的摆放位置：上家横第一张，对家横中间，下家横末张
	idx := calledFrom - 1
	from := calledFrom
	meld := player.Meld{
		Tiles:       []tile.Tile{claimed, claimed, claimed},
		Type:        player.Pon,
		CalledIndex: &idx,
		CalledFrom:  &from,
	}
	p.Hand.Melds = append(p.Hand.Melds, meld)
	e.emit(event.Meld{PlayerIndex: seat, Meld: meld})
	return nil
}

// CallKan 开杠。根据局面自动区分大明杠（鸣牌窗口内）、
// 加杠（已有碰）与暗杠（手中四张），之后摸岭上牌并翻新宝牌指示牌。
func (e *Engine) CallKan(seat int, tiles []tile.Tile) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.state
	if e.gameOver {
		return apperrors.ErrGameOver
	}
	if len(tiles) == 0 {
		return apperrors.Invalid("kan: no tiles given")
	}
	kind := tiles[0]
	for _, t := range tiles {
		if t != kind {
			return apperrors.Invalid("kan: tiles must be identical")
		}
	}
	p := s.Players[seat]

	if len(s.WaitingForClaims) > 0 {
		// 大明杠
		if s.LastDiscard == nil || !s.claimOwed(seat) {
			return apperrors.Invalid("kan: no claimable discard")
		}
		if *s.LastDiscard != kind {
			return apperrors.Invalid("kan: tile %s does not match the discard %s", kind, *s.LastDiscard)
		}
		if p.Hand.CountOf(kind) < 3 {
			return apperrors.Invalid("kan: need three matching tiles in hand")
		}
		calledFrom := (seat - s.LastDiscardPlayer + 4) % 4
		p.Hand.RemoveAll(kind, 3)
		e.claimMeldLocked(seat)

		idx := 0
		from := calledFrom
		meld := player.Meld{
			Tiles:       []tile.Tile{kind, kind, kind, kind},
			Type:        player.Kan,
			CalledIndex: &idx,
			CalledFrom:  &from,
		}
		p.Hand.Melds = append(p.Hand.Melds, meld)
		e.completeKanLocked(seat, meld)
		return nil
	}

	if seat != s.CurrentPlayer {
		return apperrors.NotTurn("kan: seat %d, current %d", seat, s.CurrentPlayer)
	}
	if mi := p.Hand.MeldOf(player.Pon, kind); mi >= 0 && p.Hand.CountOf(kind) >= 1 {
		// 加杠：升级已有的碰
		p.Hand.Remove(kind)
		p.Hand.Melds[mi].Tiles = append(p.Hand.Melds[mi].Tiles, kind)
		p.Hand.Melds[mi].Type = player.AddedKan
		e.clearIppatsuLocked()
		e.completeKanLocked(seat, p.Hand.Melds[mi])
		return nil
	}
	if p.Hand.CountOf(kind) >= 4 {
		// 暗杠
		p.Hand.RemoveAll(kind, 4)
		meld := player.Meld{
			Tiles: []tile.Tile{kind, kind, kind, kind},
			Type:  player.ClosedKan,
		}
		p.Hand.Melds = append(p.Hand.Melds, meld)
		e.clearIppatsuLocked()
		e.completeKanLocked(seat, meld)
		return nil
	}
	return apperrors.Invalid("kan: no matching tiles for %s", kind)
}

// completeKanLocked 杠的收尾：摸岭上牌、翻新指示牌、发事件，
// 四杠则途中流局
func (e *Engine) completeKanLocked(seat int, meld player.Meld) {
	s := e.state
	s.KanCount++
	p := s.Players[seat]

	if t, ok := s.Wall.DrawReplacement(); ok {
		p.Draw(t)
		if p.Riichi {
			p.MustTsumogiri = true
		}
		e.emit(event.DrawTile{PlayerIndex: seat, Tile: t, Remaining: s.Wall.Remaining()})
	}
	s.Wall.RevealKanDora()
	e.emit(event.Meld{PlayerIndex: seat, Meld: meld})

	if s.KanCount >= 4 {
		e.resolveRyukyokuLocked(event.ReasonFourKans)
	}
}
