package engine

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/pairplay/duoquiz/internal/duoquiz"
)

// 32 symbols, no 0/1/I/O. Exactly 32 so a masked byte maps uniformly.
const roomCodeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const allocateRetries = 5

// allocateRoomCode returns a code not bound to any waiting or playing game.
// After the retry budget it hands back the last candidate anyway: at 32^6
// codes a collision among concurrently active games is astronomically
// unlikely, and degrading to best-effort beats blocking room creation.
func (s *Service) allocateRoomCode(ctx context.Context) (string, error) {
	var code string
	for range allocateRetries {
		var err error
		code, err = randomRoomCode()
		if err != nil {
			return "", err
		}
		inUse, err := s.store.CodeInUse(ctx, code)
		if err != nil {
			return "", fmt.Errorf("checking room code: %w", err)
		}
		if !inUse {
			return code, nil
		}
		s.logger.Warn("room code collision, retrying", "code", code)
	}
	return code, nil
}

func randomRoomCode() (string, error) {
	buf := make([]byte, duoquiz.RoomCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating room code: %w", err)
	}
	code := make([]byte, len(buf))
	for i, b := range buf {
		code[i] = roomCodeAlphabet[b&0x1F]
	}
	return string(code), nil
}
