package app

import (
	"sync"

	"chatdock/internal/logger"
)

// State 应用状态
type State int

const (
	StateStarting State = iota // 正在创建窗口和托盘
	StateRunning               // 托盘就绪，正常运行
	StateQuitting              // 收到退出请求，正在关闭窗口和托盘
	StateStopped               // 事件循环已结束
)

// String 返回状态的可读名称
func (s State) String() string {
	switch s {
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateQuitting:
		return "Quitting"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Event 状态机事件
type Event int

const (
	EventReady          Event = iota // 托盘就绪
	EventConfigReloaded              // 配置文件热加载
	EventQuitRequested               // 托盘菜单退出或收到系统信号
	EventShutdown                    // 事件循环退出
)

// String 返回事件的可读名称
func (e Event) String() string {
	switch e {
	case EventReady:
		return "Ready"
	case EventConfigReloaded:
		return "ConfigReloaded"
	case EventQuitRequested:
		return "QuitRequested"
	case EventShutdown:
		return "Shutdown"
	default:
		return "Unknown"
	}
}

// transitionRule 定义单条转换规则
type transitionRule struct {
	From  State
	Event Event
	To    State
}

// transitionRules 完整的状态转换表
var transitionRules = []transitionRule{
	// From Starting
	{StateStarting, EventReady, StateRunning},
	{StateStarting, EventQuitRequested, StateQuitting},
	{StateStarting, EventShutdown, StateStopped},

	// From Running
	{StateRunning, EventConfigReloaded, StateRunning},
	{StateRunning, EventQuitRequested, StateQuitting},
	{StateRunning, EventShutdown, StateStopped},

	// From Quitting
	{StateQuitting, EventShutdown, StateStopped},
}

// StateChange 状态转换结果
type StateChange struct {
	From  State
	To    State
	Event Event
	Valid bool // false 表示转换被拒绝
}

// StateMachine 应用状态机。退出请求可能同时来自托盘、信号和窗口事件，转换加锁串行
type StateMachine struct {
	mu           sync.Mutex
	current      State
	transitions  map[State]map[Event]State
	onTransition func(change StateChange)
}

// NewStateMachine 创建状态机
func NewStateMachine(initial State, onTransition func(change StateChange)) *StateMachine {
	lookup := make(map[State]map[Event]State)
	for _, r := range transitionRules {
		if lookup[r.From] == nil {
			lookup[r.From] = make(map[Event]State)
		}
		lookup[r.From][r.Event] = r.To
	}

	return &StateMachine{
		current:      initial,
		transitions:  lookup,
		onTransition: onTransition,
	}
}

// Current 返回当前状态
func (sm *StateMachine) Current() State {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.current
}

// Transition 触发状态转换。回调在锁外执行，可以再次触发转换
func (sm *StateMachine) Transition(event Event) StateChange {
	sm.mu.Lock()
	next, ok := sm.transitions[sm.current][event]
	if !ok {
		change := StateChange{From: sm.current, Event: event, Valid: false}
		sm.mu.Unlock()
		logger.Debug("State machine: ignored %s + %s", change.From, event)
		return change
	}

	change := StateChange{From: sm.current, To: next, Event: event, Valid: true}
	sm.current = next
	sm.mu.Unlock()

	logger.Info("State machine: %s + %s -> %s", change.From, event, next)
	if sm.onTransition != nil {
		sm.onTransition(change)
	}
	return change
}
