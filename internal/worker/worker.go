// File: internal/worker/worker.go
package worker

import "sync"

// Task 為池中執行的工作單位
type Task func()

// Pool 定義固定數量 goroutine 的工作池，
// 用於商品圖片上傳等可平行化的 IO 工作。
type Pool interface {
	Submit(Task)
	Stop()
}

// NewPool 建立 n 個 worker 的池，n <= 0 視為 1
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job != nil {
					job()
				}
			}
		}()
	}
	return p
}

type pool struct {
	jobs chan Task
	wg   sync.WaitGroup
}

// Submit 送出工作，池滿時阻塞直到有 worker 接手
func (p *pool) Submit(t Task) {
	p.jobs <- t
}

// Stop 關閉佇列並等待所有工作完成
func (p *pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// InlinePool 直接在呼叫端執行工作，測試用
type InlinePool struct{}

func (InlinePool) Submit(t Task) {
	if t != nil {
		t()
	}
}

func (InlinePool) Stop() {}
