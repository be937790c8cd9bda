package server

import (
	"context"
	"log"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/shirokuma-dev/riichi-engine/internal/apperrors"
	"github.com/shirokuma-dev/riichi-engine/internal/engine"
	"github.com/shirokuma-dev/riichi-engine/internal/event"
	"github.com/shirokuma-dev/riichi-engine/internal/gamelog"
	"github.com/shirokuma-dev/riichi-engine/internal/protocol"
	"github.com/shirokuma-dev/riichi-engine/internal/storage"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// handleMessage 按消息类型派发
func (s *Server) handleMessage(c *Client, msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgCreateMatch:
		s.handleCreateMatch(c, msg)
	case protocol.MsgListMatches:
		c.SendMessage(protocol.MsgMatchList, protocol.MatchListPayload{MatchIDs: s.matches.IDs()})
	case protocol.MsgGetState:
		s.handleGetState(c, msg)
	case protocol.MsgAction:
		s.handleAction(c, msg)
	case protocol.MsgAutoPlay:
		s.handleAutoPlay(c, msg)
	default:
		c.SendError(apperrors.ErrUnknownAction)
	}
}

func (s *Server) handleCreateMatch(c *Client, msg *protocol.Message) {
	var payload protocol.CreateMatchPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.SendError(err)
		return
	}

	maxRounds := payload.MaxRounds
	if maxRounds <= 0 {
		maxRounds = s.config.Game.MaxRounds
	}
	seed := payload.Seed
	if seed == 0 {
		seed = s.config.Game.Seed
	}
	id, eng := s.matches.Create(engine.Options{
		Names:     payload.Names,
		MaxRounds: maxRounds,
		Delegate:  s.delegate,
		Seed:      seed,
	})
	c.setMatchID(id)
	c.SendMessage(protocol.MsgMatchCreated, protocol.MatchCreatedPayload{MatchID: id})
	s.pushEvents(id, eng)
}

func (s *Server) handleGetState(c *Client, msg *protocol.Message) {
	var payload protocol.MatchPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.SendError(err)
		return
	}
	eng, err := s.matches.Get(payload.MatchID)
	if err != nil {
		c.SendError(err)
		return
	}
	c.setMatchID(payload.MatchID)
	c.SendMessage(protocol.MsgState, protocol.Snapshot(eng, -1))
}

func (s *Server) handleAction(c *Client, msg *protocol.Message) {
	var payload protocol.ActionPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.SendError(err)
		return
	}
	eng, err := s.matches.Get(payload.MatchID)
	if err != nil {
		c.SendError(err)
		return
	}
	if err := protocol.Apply(eng, payload.Action); err != nil {
		c.SendError(err)
		return
	}
	s.pushEvents(payload.MatchID, eng)
	s.archiveIfOver(payload.MatchID, eng)
}

func (s *Server) handleAutoPlay(c *Client, msg *protocol.Message) {
	var payload protocol.MatchPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.SendError(err)
		return
	}
	eng, err := s.matches.Get(payload.MatchID)
	if err != nil {
		c.SendError(err)
		return
	}
	if _, err := s.registry.AutoPlayTurn(eng, -1, s.config.AI.Type, nil); err != nil {
		c.SendError(err)
		return
	}
	s.pushEvents(payload.MatchID, eng)
	s.archiveIfOver(payload.MatchID, eng)
}

// pushEvents 取走引擎新产生的事件并推给关注该对局的客户端
func (s *Server) pushEvents(matchID string, eng *engine.Engine) {
	events := eng.PopEvents()
	if len(events) == 0 {
		return
	}
	lines := make([]string, 0, len(events))
	for _, ev := range events {
		line, err := gamelog.MJAILine(ev)
		if err != nil {
			log.Printf("事件序列化失败: %v", err)
			continue
		}
		lines = append(lines, line)
	}

	msg, err := protocol.NewMessage(protocol.MsgEvents, protocol.EventsPayload{
		MatchID: matchID,
		Events:  lines,
	})
	if err != nil {
		log.Printf("事件推送失败: %v", err)
		return
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		log.Printf("事件推送失败: %v", err)
		return
	}
	s.broadcastToMatch(matchID, raw)
}

// archiveIfOver 终局时把整场牌谱写入 Redis 并移出注册表
func (s *Server) archiveIfOver(matchID string, eng *engine.Engine) {
	if !eng.IsGameOver() {
		return
	}
	defer s.matches.Remove(matchID)
	if s.store == nil {
		return
	}

	history := eng.History()
	tenhou, err := gamelog.TenhouJSON(history)
	if err != nil {
		log.Printf("牌谱投影失败: %v", err)
		return
	}
	mjai, err := gamelog.ToMJAI(history)
	if err != nil {
		log.Printf("牌谱投影失败: %v", err)
		return
	}

	st := eng.State()
	archive := &storage.MatchArchive{
		MatchID:     matchID,
		Names:       st.Names(),
		FinalScores: st.Scores(),
		EndReason:   endReason(history),
		TenhouLog:   tenhou,
		MJAILog:     mjai,
		ArchivedAt:  time.Now().Unix(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.SaveMatch(ctx, archive); err != nil {
		log.Printf("牌谱归档失败: %v", err)
		return
	}
	log.Printf("📜 对局 %s 已归档 (%s)", matchID, archive.EndReason)
}

func endReason(history []event.Event) string {
	for i := len(history) - 1; i >= 0; i-- {
		if e, ok := history[i].(event.EndGame); ok {
			return e.Reason
		}
	}
	return event.EndReasonRequested
}
