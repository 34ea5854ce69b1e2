package pow

import (
	"fmt"
	"strings"

	"github.com/Luismorlan/ledger_in_go/model"
	"go.uber.org/zap"
)

// Engine mines and checks blocks at a fixed difficulty.
type Engine struct {
	difficulty int
	logger     *zap.Logger
}

// NewEngine panics on a negative difficulty since no hash could ever satisfy it.
func NewEngine(difficulty int, logger *zap.Logger) *Engine {
	mustBeValidDifficulty(difficulty)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		difficulty: difficulty,
		logger:     logger.With(zap.String("component", "pow"), zap.Int("difficulty", difficulty)),
	}
}

func (e *Engine) Difficulty() int {
	return e.difficulty
}

// Mine blocks until a matching nonce is found.
func (e *Engine) Mine(block *model.Block) *model.Block {
	start := block.Nonce
	Mine(block, e.difficulty)
	e.logger.Debug("mined block",
		zap.Int64("index", block.Index),
		zap.Int64("nonce", block.Nonce),
		zap.Int64("attempts", block.Nonce-start+1),
		zap.String("hash", block.Hash))
	return block
}

// Verify reports whether the block's stored hash is its real hash and meets the difficulty.
func (e *Engine) Verify(block *model.Block) bool {
	return block.Hash == block.ComputeHash() && HasLeadingZeros(block.Hash, e.difficulty)
}

// Mine a block: fill the nonce and hash given the difficulty setting.
// difficulty - how many leading hex zeros
// The search starts from the block's current nonce and has no upper bound.
func Mine(block *model.Block, difficulty int) *model.Block {
	mustBeValidDifficulty(difficulty)
	block.Difficulty = difficulty
	for {
		isMatched, digest := MatchDifficulty(block, difficulty)
		if isMatched {
			block.Hash = digest
			return block
		}
		block.Nonce++
	}
}

// MatchDifficulty hashes the block as it is now.
func MatchDifficulty(block *model.Block, difficulty int) (bool, string) {
	digest := block.ComputeHash()
	return HasLeadingZeros(digest, difficulty), digest
}

func HasLeadingZeros(digest string, difficulty int) bool {
	return strings.HasPrefix(digest, strings.Repeat("0", difficulty))
}

func mustBeValidDifficulty(difficulty int) {
	if difficulty < 0 {
		panic(fmt.Sprintf("pow: difficulty must not be negative, got %d", difficulty))
	}
}
