package scheduler

import "time"

// Outcome is the decision of an ErrorHandler: keep the schedule going after a
// delay, or stop it permanently.
type Outcome struct {
	delay time.Duration
	stop  bool
}

// Continue продолжает расписание со следующим запуском через after
func Continue(after time.Duration) Outcome {
	return Outcome{delay: after}
}

// Stop завершает расписание. Возобновить его можно только через Resume
func Stop() Outcome {
	return Outcome{stop: true}
}

// Stopped возвращает true, если расписание завершается
func (o Outcome) Stopped() bool {
	return o.stop
}

// Delay возвращает задержку до следующего запуска
func (o Outcome) Delay() time.Duration {
	return o.delay
}
