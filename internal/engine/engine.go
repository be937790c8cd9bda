package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/shirokuma-dev/riichi-engine/internal/apperrors"
	"github.com/shirokuma-dev/riichi-engine/internal/event"
	"github.com/shirokuma-dev/riichi-engine/internal/player"
	"github.com/shirokuma-dev/riichi-engine/internal/scoring"
	"github.com/shirokuma-dev/riichi-engine/internal/tile"
	"github.com/shirokuma-dev/riichi-engine/internal/wall"
)

const (
	// DefaultMaxRounds 默认打满东南两场
	DefaultMaxRounds = 8
	// notenPenaltyPool 荒牌流局时不听罚符总额
	notenPenaltyPool = 3000
	// riichiBet 立直供托
	riichiBet = 1000
)

// Options 创建引擎的参数。零值字段取默认：四名占位玩家、
// 八局、标准算点委托、时间种子。
type Options struct {
	Names     [4]string
	MaxRounds int
	Delegate  scoring.Delegate
	Seed      int64
}

// Engine 规则引擎。持有一局对局的全部状态，所有公开方法
// 加锁串行执行；失败的动作不留下任何状态变化。
type Engine struct {
	mu       sync.Mutex
	state    *GameState
	log      *event.Log
	delegate scoring.Delegate
	rng      *rand.Rand

	gameOver bool
	// riichiPending 刚宣言立直、立直打牌尚未落河的座位（-1 表示无）
	riichiPending int

	actions actionsCache
}

// New 创建引擎并发出 start_game 与首局 start_kyoku
func New(opts Options) *Engine {
	for i := range opts.Names {
		if opts.Names[i] == "" {
			opts.Names[i] = fmt.Sprintf("Player %d", i)
		}
	}
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = DefaultMaxRounds
	}
	if opts.Delegate == nil {
		opts.Delegate = scoring.NewStandard()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := &Engine{
		log:           event.NewLog(),
		delegate:      opts.Delegate,
		rng:           rand.New(rand.NewSource(seed)),
		riichiPending: -1,
	}
	var players [4]*player.Player
	for i := range players {
		players[i] = player.New(opts.Names[i])
	}
	e.state = &GameState{
		Players:           players,
		MaxRounds:         opts.MaxRounds,
		LastDiscardPlayer: -1,
	}

	e.emit(event.StartGame{Names: e.state.Names(), MaxRounds: opts.MaxRounds})
	e.startKyokuLocked(0, 1)
	return e
}

// State 当前状态。引擎对外是事件驱动的，状态访问用于
// 快照与测试，调用方不得修改。
func (e *Engine) State() *GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// IsGameOver 对局是否已终结
func (e *Engine) IsGameOver() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gameOver
}

// PopEvents 取走并清空未投递事件
func (e *Engine) PopEvents() []event.Event {
	return e.log.Drain()
}

// History 完整事件历史
func (e *Engine) History() []event.Event {
	return e.log.History()
}

// emit 记录事件并使动作缓存失效
func (e *Engine) emit(ev event.Event) {
	e.log.Append(ev)
	e.actions.valid = false
}

// StartKyoku 开指定的一局。通常由引擎在 advance 时自动调用，
// 外部调用用于复现固定局面。
func (e *Engine) StartKyoku(dealer, roundNumber int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gameOver {
		return apperrors.ErrGameOver
	}
	if dealer < 0 || dealer > 3 || roundNumber < 1 {
		return apperrors.Invalid("start_kyoku: dealer=%d round=%d", dealer, roundNumber)
	}
	e.startKyokuLocked(dealer, roundNumber)
	return nil
}

func (e *Engine) startKyokuLocked(dealer, roundNumber int) {
	s := e.state
	s.Dealer = dealer
	s.RoundNumber = roundNumber
	s.CurrentPlayer = dealer
	s.Wall = wall.New(e.rng)
	s.KanCount = 0
	s.WaitingForClaims = nil
	s.LastDiscard = nil
	s.LastDiscardPlayer = -1
	e.riichiPending = -1

	for i, p := range s.Players {
		p.ResetForKyoku(tile.WindName((i - dealer + 4) % 4))
	}

	// 配牌：每家 13 张，庄家多摸第 14 张
	for round := 0; round < 13; round++ {
		for offset := 0; offset < 4; offset++ {
			t, _ := s.Wall.Draw()
			s.Players[(dealer+offset)%4].Draw(t)
		}
	}
	t, _ := s.Wall.Draw()
	s.Players[dealer].Draw(t)

	var hands [4][]tile.Tile
	for i, p := range s.Players {
		hands[i] = append([]tile.Tile{}, p.Hand.Tiles...)
	}
	e.emit(event.StartKyoku{
		Dealer:         dealer,
		RoundNumber:    roundNumber,
		Honba:          s.Honba,
		Names:          s.Names(),
		Scores:         s.Scores(),
		DoraIndicators: s.Wall.DoraIndicators(),
		Hands:          hands,
	})

	// 九种九牌：配牌即含九种以上幺九牌则途中流局
	for _, p := range s.Players {
		if countTerminalKinds(p.Hand.Tiles) >= 9 {
			e.resolveRyukyokuLocked(event.ReasonNineTerminals)
			return
		}
	}
}

func countTerminalKinds(tiles []tile.Tile) int {
	seen := map[tile.Tile]struct{}{}
	for _, t := range tiles {
		if t.IsTerminalOrHonor() {
			seen[t] = struct{}{}
		}
	}
	return len(seen)
}

// Draw 当前玩家摸牌。摸牌不推进回合；摸完最后一张立即荒牌流局。
func (e *Engine) Draw(seat int) (tile.Tile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.drawLocked(seat)
}

func (e *Engine) drawLocked(seat int) (tile.Tile, error) {
	s := e.state
	if e.gameOver {
		return tile.Tile{}, apperrors.ErrGameOver
	}
	if len(s.WaitingForClaims) > 0 {
		return tile.Tile{}, apperrors.Invalid("draw: claim window open")
	}
	if seat != s.CurrentPlayer {
		return tile.Tile{}, apperrors.NotTurn("draw: seat %d, current %d", seat, s.CurrentPlayer)
	}
	p := s.Players[seat]
	expected := 13 - 3*len(p.Hand.Melds)
	if len(p.Hand.Tiles) != expected {
		return tile.Tile{}, apperrors.Invalid("draw: hand has %d tiles", len(p.Hand.Tiles))
	}

	t, ok := s.Wall.Draw()
	if !ok {
		return tile.Tile{}, apperrors.Invalid("draw: wall empty")
	}
	p.Draw(t)
	p.IppatsuAvailable = false
	if p.Riichi {
		p.MustTsumogiri = true
	}
	e.emit(event.DrawTile{PlayerIndex: seat, Tile: t, Remaining: s.Wall.Remaining()})

	if s.Wall.Exhausted() {
		e.resolveRyukyokuLocked(event.ReasonExhausted)
	}
	return t, nil
}

// Discard 当前玩家打出一张手牌，随后对其余三家打开鸣牌窗口
func (e *Engine) Discard(seat int, t tile.Tile) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.state
	if e.gameOver {
		return apperrors.ErrGameOver
	}
	if len(s.WaitingForClaims) > 0 {
		return apperrors.Invalid("discard: claim window open")
	}
	if seat != s.CurrentPlayer {
		return apperrors.NotTurn("discard: seat %d, current %d", seat, s.CurrentPlayer)
	}
	p := s.Players[seat]
	if len(p.Hand.Tiles)%3 != 2 {
		return apperrors.Invalid("discard: hand has %d tiles", len(p.Hand.Tiles))
	}
	i := p.Hand.IndexOf(t)
	if i < 0 {
		return apperrors.Invalid("discard: tile %s not in hand", t)
	}
	if p.MustTsumogiri {
		if last, ok := p.LastDrawn(); !ok || t != last {
			return apperrors.Invalid("discard: riichi requires discarding the drawn tile")
		}
	}
	// 手里有等值的早摸牌时按摸切处理，打出刚摸的那张
	if last, ok := p.LastDrawn(); ok && t == last {
		i = len(p.Hand.Tiles) - 1
	}

	tsumogiri := i == len(p.Hand.Tiles)-1
	p.Hand.RemoveAt(i)
	p.River = append(p.River, t)
	p.MustTsumogiri = false
	if e.riichiPending == seat {
		// 立直宣言牌落河，一发窗口开启
		p.IppatsuAvailable = true
		e.riichiPending = -1
	}

	s.LastDiscard = &t
	s.LastDiscardPlayer = seat
	s.WaitingForClaims = []int{(seat + 1) % 4, (seat + 2) % 4, (seat + 3) % 4}
	s.CurrentPlayer = (seat + 1) % 4

	e.emit(event.Discard{PlayerIndex: seat, Tile: t, Tsumogiri: tsumogiri})

	if e.fourWindsAborted() {
		e.resolveRyukyokuLocked(event.ReasonFourWinds)
	}
	return nil
}

// fourWindsAborted 四风连打：第一巡四家无鸣牌地打出同一张风牌
func (e *Engine) fourWindsAborted() bool {
	var first tile.Tile
	for i, p := range e.state.Players {
		if len(p.Hand.Melds) > 0 || len(p.River) != 1 {
			return false
		}
		if i == 0 {
			first = p.River[0]
		} else if p.River[0] != first {
			return false
		}
	}
	return first.Suit == tile.Wind
}

// Skip 放弃行动。鸣牌窗口内表示弃权，最后一家弃权后窗口关闭并
// 自动为下家摸牌；窗口外由当前玩家快进自己的回合。
func (e *Engine) Skip(seat int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.state
	if e.gameOver {
		return apperrors.ErrGameOver
	}
	if len(s.WaitingForClaims) > 0 {
		if !s.removeClaim(seat) {
			// 不在窗口内的重复表态直接忽略
			return nil
		}
		e.emit(event.Skip{PlayerIndex: seat})
		if len(s.WaitingForClaims) == 0 {
			e.closeClaimsLocked()
		}
		return nil
	}

	if seat != s.CurrentPlayer {
		return apperrors.NotTurn("skip: seat %d, current %d", seat, s.CurrentPlayer)
	}
	e.emit(event.Skip{PlayerIndex: seat})
	s.CurrentPlayer = (seat + 1) % 4
	e.autoDrawLocked()
	return nil
}

// closeClaimsLocked 三家全部弃权：关闭窗口并为下家自动摸牌
func (e *Engine) closeClaimsLocked() {
	e.state.LastDiscard = nil
	e.state.LastDiscardPlayer = -1
	e.emit(event.ClaimsClosed{})
	e.autoDrawLocked()
}

// autoDrawLocked 为当前玩家摸牌；手牌已满等情况下静默跳过
func (e *Engine) autoDrawLocked() {
	if e.gameOver {
		return
	}
	p := e.state.Players[e.state.CurrentPlayer]
	if len(p.Hand.Tiles) == 13-3*len(p.Hand.Melds) {
		_, _ = e.drawLocked(e.state.CurrentPlayer)
	}
}

// resolveRyukyokuLocked 流局结算：判定各家听牌、分配不听罚符，
// 发出 ryukyoku 后推进到下一局（途中流局一律连庄）。
func (e *Engine) resolveRyukyokuLocked(reason string) {
	s := e.state
	s.WaitingForClaims = nil
	s.LastDiscard = nil
	s.LastDiscardPlayer = -1

	var tenpai [4]bool
	count := 0
	for i, p := range s.Players {
		tenpai[i] = tenpaiNow(p)
		if tenpai[i] {
			count++
		}
	}
	if count > 0 && count < 4 {
		gain := notenPenaltyPool / count
		loss := notenPenaltyPool / (4 - count)
		for i, p := range s.Players {
			if tenpai[i] {
				p.Score += gain
			} else {
				p.Score -= loss
			}
		}
	}

	e.emit(event.Ryukyoku{Reason: reason, Tenpai: tenpai, Scores: s.Scores()})

	dealerKeeps := reason != event.ReasonExhausted || tenpai[s.Dealer]
	e.advanceLocked(nil, dealerKeeps)
}

// tenpaiNow 听牌判定。14-3m 张形状时只要存在一张打出后听牌即算听
func tenpaiNow(p *player.Player) bool {
	tiles := p.Hand.Tiles
	if len(tiles)%3 == 2 {
		for i := range tiles {
			rest := make([]tile.Tile, 0, len(tiles)-1)
			rest = append(rest, tiles[:i]...)
			rest = append(rest, tiles[i+1:]...)
			if scoring.IsTenpai(rest, p.Hand.Melds) {
				return true
			}
		}
		return false
	}
	return scoring.IsTenpai(tiles, p.Hand.Melds)
}

// AdvanceHand 手动推进到下一局。winner 为 nil 视为非连庄流局。
func (e *Engine) AdvanceHand(winner *int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gameOver {
		return apperrors.ErrGameOver
	}
	dealerKeeps := winner != nil && *winner == e.state.Dealer
	e.advanceLocked(winner, dealerKeeps)
	return nil
}

// advanceLocked 一局收尾：破产/打满则终局，否则 round_end 后开下一局
func (e *Engine) advanceLocked(winner *int, dealerKeeps bool) {
	s := e.state
	for _, p := range s.Players {
		if p.Score <= 0 {
			e.endGameLocked(event.EndReasonBankruptcy)
			return
		}
	}

	dealer := s.Dealer
	roundNumber := s.RoundNumber
	if dealerKeeps {
		s.Honba++
	} else {
		dealer = (dealer + 1) % 4
		roundNumber++
		s.Honba = 0
	}

	if roundNumber > s.MaxRounds {
		e.emit(event.RoundEnd{Winner: winner, Scores: s.Scores()})
		e.endGameLocked(event.EndReasonFinished)
		return
	}
	e.emit(event.RoundEnd{Winner: winner, Scores: s.Scores()})
	e.startKyokuLocked(dealer, roundNumber)
}

// EndGame 终结对局并返回终局状态。幂等：重复调用不再发事件，
// 返回同一份冻结状态。
func (e *Engine) EndGame() *GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.endGameLocked(event.EndReasonRequested)
	return e.state
}

func (e *Engine) endGameLocked(reason string) {
	if e.gameOver {
		return
	}
	e.gameOver = true
	e.emit(event.EndGame{Reason: reason, Scores: e.state.Scores()})
}
