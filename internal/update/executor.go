package update

// Executor runs a check off the caller's goroutine. Hosts inject their own
// (a worker pool, a scheduler); tests inject a synchronous one.
type Executor interface {
	Go(func())
}

type ExecutorFunc func(func())

func (f ExecutorFunc) Go(task func()) { f(task) }

// GoExecutor starts one goroutine per task.
type GoExecutor struct{}

func (GoExecutor) Go(task func()) { go task() }
