package snake

// Observer receives the notifications a GridModel emits.
// Methods are called on the goroutine that drove the change (usually the
// game loop) after the model lock has been released, so implementations may
// read the model but must hand off to their own goroutine for slow work.
type Observer interface {
	ScoreChanged(score int)
	GameOver(finalScore int)
}

// Observers fans a notification out to several observers in order.
type Observers []Observer

// ScoreChanged implements Observer.
func (all Observers) ScoreChanged(score int) {
	for _, o := range all {
		o.ScoreChanged(score)
	}
}

// GameOver implements Observer.
func (all Observers) GameOver(finalScore int) {
	for _, o := range all {
		o.GameOver(finalScore)
	}
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnScoreChanged func(score int)
	OnGameOver     func(finalScore int)
}

// ScoreChanged implements Observer.
func (f ObserverFuncs) ScoreChanged(score int) {
	if f.OnScoreChanged != nil {
		f.OnScoreChanged(score)
	}
}

// GameOver implements Observer.
func (f ObserverFuncs) GameOver(finalScore int) {
	if f.OnGameOver != nil {
		f.OnGameOver(finalScore)
	}
}

// pending collects what a locked operation wants to announce.
type pending struct {
	scoreChanged bool
	gameOver     bool
	score        int
}

func (p pending) deliver(o Observer) {
	if o == nil {
		return
	}
	if p.scoreChanged {
		o.ScoreChanged(p.score)
	}
	if p.gameOver {
		o.GameOver(p.score)
	}
}
