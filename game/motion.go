package game

import "errors"

// 默认场地参数：800x600 场地，50x20 角色，每帧 10 像素
const (
	DefaultFieldWidth  = 800
	DefaultFieldHeight = 600
	DefaultActorWidth  = 50
	DefaultActorHeight = 20
	DefaultStep        = 10
)

// Field 场地与角色尺寸，以及每 Tick 移动步长
// Height 与 ActorHeight 只供渲染层使用，积分只看水平方向
type Field struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	ActorWidth  float64 `json:"actorWidth"`
	ActorHeight float64 `json:"actorHeight"`
	Step        float64 `json:"step"`
}

// DefaultField 返回默认场地
func DefaultField() Field {
	return Field{
		Width:       DefaultFieldWidth,
		Height:      DefaultFieldHeight,
		ActorWidth:  DefaultActorWidth,
		ActorHeight: DefaultActorHeight,
		Step:        DefaultStep,
	}
}

// MaxX 角色左边缘可达到的最大偏移
func (f Field) MaxX() float64 { return f.Width - f.ActorWidth }

// Center 角色居中时的偏移（开局与重开时的位置）
func (f Field) Center() float64 { return f.Width/2 - f.ActorWidth/2 }

// Validate 校验场地参数
func (f Field) Validate() error {
	switch {
	case f.Width <= 0:
		return errors.New("field width must be positive")
	case f.ActorWidth <= 0:
		return errors.New("actor width must be positive")
	case f.ActorWidth > f.Width:
		return errors.New("actor width exceeds field width")
	case f.Step < 0:
		return errors.New("step must not be negative")
	}
	return nil
}

// Clamp 将位置裁剪到 [0, MaxX]
func (f Field) Clamp(x float64) float64 {
	if x < 0 {
		return 0
	}
	if hi := f.MaxX(); x > hi {
		return hi
	}
	return x
}

// Integrate 根据按住的键计算下一帧位置（纯函数）
// 左右同时按住时相互抵消；已在边界且继续向外推时停在边界
func Integrate(prev float64, in InputState, f Field) float64 {
	next := prev
	if in.Held(KeyRight) {
		next += f.Step
	}
	if in.Held(KeyLeft) {
		next -= f.Step
	}
	return f.Clamp(next)
}
