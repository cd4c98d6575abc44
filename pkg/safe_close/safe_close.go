// Package safe_close coordinates graceful shutdown of long running goroutines
// Package safe_close 协调长期运行协程的优雅关闭
package safe_close

import (
	"sync"
)

// SafeClose 关闭信号只发送一次，所有 Attach 的协程在收到信号后调用 done 退出
type SafeClose struct {
	once    sync.Once
	wg      sync.WaitGroup
	closeCh chan struct{}

	mu  sync.Mutex
	err error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{closeCh: make(chan struct{})}
}

// Attach 启动一个受管理的协程
// fn 必须在退出前调用 done
func (s *SafeClose) Attach(fn func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go fn(s.wg.Done, s.closeCh)
}

// SendCloseSignal 发送关闭信号，err 为首个导致关闭的错误（可为 nil）
func (s *SafeClose) SendCloseSignal(err error) {
	s.once.Do(func() {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		close(s.closeCh)
	})
}

// WaitClosed 等待所有协程退出并返回导致关闭的错误
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Closed 是否已发送关闭信号
func (s *SafeClose) Closed() bool {
	select {
	case <-s.closeCh:
		return true
	default:
		return false
	}
}
