package game

import "sync"

// KeyEventKind 原始按键事件类型
type KeyEventKind int

const (
	KeyDown KeyEventKind = iota
	KeyUp
)

func (k KeyEventKind) String() string {
	if k == KeyUp {
		return "keyup"
	}
	return "keydown"
}

// KeySource 宿主的全局输入面：按事件类型订阅/退订原始按键
type KeySource interface {
	// AddKeyListener 注册监听，返回的函数用于退订（可重复调用）
	AddKeyListener(kind KeyEventKind, fn func(key string)) (remove func())
}

type keyListener struct {
	id   uint64
	kind KeyEventKind
	fn   func(key string)
}

// KeyBus 进程内的 KeySource 实现：宿主把收到的原始按键 Dispatch 进来
type KeyBus struct {
	mu        sync.Mutex
	nextID    uint64
	listeners []keyListener
}

// NewKeyBus 创建空的按键总线
func NewKeyBus() *KeyBus { return &KeyBus{} }

func (b *KeyBus) AddKeyListener(kind KeyEventKind, fn func(key string)) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, keyListener{id: id, kind: kind, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *KeyBus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, l := range b.listeners {
		if l.id == id {
			b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Dispatch 把一次按键事件分发给当前的监听者，返回被通知的数量
// 监听函数在锁外执行，可以在回调中退订
func (b *KeyBus) Dispatch(kind KeyEventKind, key string) int {
	b.mu.Lock()
	targets := make([]func(string), 0, len(b.listeners))
	for _, l := range b.listeners {
		if l.kind == kind {
			targets = append(targets, l.fn)
		}
	}
	b.mu.Unlock()

	for _, fn := range targets {
		fn(key)
	}
	return len(targets)
}

// Listeners 当前注册的监听数量
func (b *KeyBus) Listeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}
