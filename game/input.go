package game

// Key 可识别的移动按键（单轴：仅左右）
type Key int

const (
	KeyLeft Key = iota
	KeyRight
)

// 宿主（浏览器）上报的原始按键标识
const (
	KeyIDLeft  = "ArrowLeft"
	KeyIDRight = "ArrowRight"
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return KeyIDLeft
	case KeyRight:
		return KeyIDRight
	default:
		return "Unknown"
	}
}

// ParseKey 将原始按键标识转换为移动键；无法识别时返回 false
func ParseKey(id string) (Key, bool) {
	switch id {
	case KeyIDLeft:
		return KeyLeft, true
	case KeyIDRight:
		return KeyRight, true
	default:
		return 0, false
	}
}

// InputState 当前按住的移动键集合
// 某键在集合中，当且仅当它最近一次被观察到的变化是“按下”
type InputState struct {
	left  bool
	right bool
}

// OnKeyDown 按下：加入集合（重复按下无影响）。返回按键是否可识别
func (s *InputState) OnKeyDown(id string) bool {
	k, ok := ParseKey(id)
	if !ok {
		return false
	}
	s.set(k, true)
	return true
}

// OnKeyUp 松开：移出集合（未按下时为空操作）。返回按键是否可识别
func (s *InputState) OnKeyUp(id string) bool {
	k, ok := ParseKey(id)
	if !ok {
		return false
	}
	s.set(k, false)
	return true
}

func (s *InputState) set(k Key, down bool) {
	switch k {
	case KeyLeft:
		s.left = down
	case KeyRight:
		s.right = down
	}
}

// Held 判断某键是否处于按住状态
func (s InputState) Held(k Key) bool {
	switch k {
	case KeyLeft:
		return s.left
	case KeyRight:
		return s.right
	default:
		return false
	}
}

// Reset 清空集合
func (s *InputState) Reset() {
	*s = InputState{}
}

// Keys 返回按住的键标识（固定顺序，便于快照输出）
func (s InputState) Keys() []string {
	keys := make([]string, 0, 2)
	if s.left {
		keys = append(keys, KeyIDLeft)
	}
	if s.right {
		keys = append(keys, KeyIDRight)
	}
	return keys
}
