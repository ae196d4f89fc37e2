package dice

import "go.uber.org/zap"

// Roller wraps a Source and logs every roll and check at debug level.
//
// Roller itself satisfies Source so it can be handed to code that only
// needs raw draws.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller drawing from src and logging to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Intn draws from the underlying source without logging.
func (r *Roller) Intn(n int) int {
	return r.src.Intn(n)
}

// Roll evaluates a parsed expression and logs the result.
func (r *Roller) Roll(expr Expression) RollResult {
	result := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// RollExpr parses and rolls expr, logging the result.
//
// Postcondition: Returns a RollResult or a *ParseError.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}

// Check runs a SkillCheck and logs the outcome.
func (r *Roller) Check(skill, dc int, cfg CheckConfig) CheckResult {
	res := SkillCheck(skill, dc, cfg, r.src)
	r.logger.Debug("skill check",
		zap.Int("skill", skill),
		zap.Int("dc", dc),
		zap.Int("roll", res.Roll),
		zap.Int("target", res.Target),
		zap.Bool("success", res.Success),
		zap.Bool("critical", res.Critical),
	)
	return res
}
