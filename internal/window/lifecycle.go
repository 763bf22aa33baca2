package window

import (
	"chatdock/internal/logger"
)

// State 窗口生命周期状态。关闭请求只会隐藏窗口，没有“已销毁”状态
type State int

const (
	StateUncreated State = iota // 尚未创建
	StateHidden                 // 已创建，隐藏中
	StateVisible                // 已创建，显示中
)

// String 返回状态的可读名称
func (s State) String() string {
	switch s {
	case StateUncreated:
		return "Uncreated"
	case StateHidden:
		return "Hidden"
	case StateVisible:
		return "Visible"
	default:
		return "Unknown"
	}
}

// Event 生命周期事件
type Event int

const (
	EventCreated        Event = iota // 原生窗口创建完成（初始隐藏）
	EventShown                       // 显示
	EventHidden                      // 隐藏
	EventCloseRequested              // 用户点了关闭按钮
)

// String 返回事件的可读名称
func (e Event) String() string {
	switch e {
	case EventCreated:
		return "Created"
	case EventShown:
		return "Shown"
	case EventHidden:
		return "Hidden"
	case EventCloseRequested:
		return "CloseRequested"
	default:
		return "Unknown"
	}
}

type transitionRule struct {
	From  State
	Event Event
	To    State
}

// transitionRules 完整的状态转换表
var transitionRules = []transitionRule{
	{StateUncreated, EventCreated, StateHidden},

	{StateHidden, EventShown, StateVisible},
	{StateHidden, EventHidden, StateHidden},
	{StateHidden, EventCloseRequested, StateHidden},

	{StateVisible, EventShown, StateVisible},
	{StateVisible, EventHidden, StateHidden},
	{StateVisible, EventCloseRequested, StateHidden},
}

// StateChange 状态转换结果
type StateChange struct {
	From  State
	To    State
	Event Event
	Valid bool // false 表示转换被拒绝
}

// Lifecycle 单个窗口的生命周期状态机，不是并发安全的，由 Registry 加锁访问
type Lifecycle struct {
	name        Name
	current     State
	transitions map[State]map[Event]State
}

var transitionLookup = func() map[State]map[Event]State {
	lookup := make(map[State]map[Event]State)
	for _, r := range transitionRules {
		if lookup[r.From] == nil {
			lookup[r.From] = make(map[Event]State)
		}
		lookup[r.From][r.Event] = r.To
	}
	return lookup
}()

// NewLifecycle 创建生命周期状态机
func NewLifecycle(name Name, initial State) *Lifecycle {
	return &Lifecycle{
		name:        name,
		current:     initial,
		transitions: transitionLookup,
	}
}

// Current 返回当前状态
func (l *Lifecycle) Current() State {
	return l.current
}

// Transition 触发状态转换，无效转换只记录日志，状态不变
func (l *Lifecycle) Transition(event Event) StateChange {
	next, ok := l.transitions[l.current][event]
	if !ok {
		logger.Debug("window %s: invalid transition %s + %s", l.name, l.current, event)
		return StateChange{From: l.current, Event: event, Valid: false}
	}

	change := StateChange{From: l.current, To: next, Event: event, Valid: true}
	l.current = next
	return change
}
