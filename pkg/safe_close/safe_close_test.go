package safe_close

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeClose(t *testing.T) {
	sc := NewSafeClose()
	var stopped int32

	for i := 0; i < 3; i++ {
		sc.Attach(func(done func(), closeSignal <-chan struct{}) {
			defer done()
			<-closeSignal
			atomic.AddInt32(&stopped, 1)
		})
	}

	assert.False(t, sc.Closed())
	boom := errors.New("boom")
	sc.SendCloseSignal(boom)
	// 再次发送不会 panic，也不会覆盖首个错误
	sc.SendCloseSignal(nil)

	assert.ErrorIs(t, sc.WaitClosed(), boom)
	assert.Equal(t, int32(3), atomic.LoadInt32(&stopped))
	assert.True(t, sc.Closed())
}
