// Package autologin 在托管窗口获得焦点后延迟注入浏览器模拟脚本和登录脚本
package autologin

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"chatdock/internal/credentials"
	"chatdock/internal/logger"
	"chatdock/internal/scripts"
	"chatdock/internal/service"
	"chatdock/internal/window"
)

// DefaultDelay 获得焦点到注入之间的等待，留给页面完成自身的加载和跳转
const DefaultDelay = 2 * time.Second

// Injector 脚本注入原语，window.Registry 实现它
type Injector interface {
	Eval(name window.Name, script string) error
}

// EmulationSource 浏览器模拟脚本来源
type EmulationSource interface {
	Load() (string, error)
}

// Outcome 一次后台自动登录的结果
type Outcome int

const (
	OutcomeLoginInjected  Outcome = iota // 登录脚本已注入
	OutcomeNoCredentials                 // 没有保存凭证，不尝试登录
	OutcomeInjectFailed                  // 注入登录脚本失败（窗口已销毁等）
	OutcomeScriptFailed                  // 无法生成登录脚本
	OutcomeStoreFailed                   // 读取凭证失败
)

// String 返回结果的可读名称
func (o Outcome) String() string {
	switch o {
	case OutcomeLoginInjected:
		return "LoginInjected"
	case OutcomeNoCredentials:
		return "NoCredentials"
	case OutcomeInjectFailed:
		return "InjectFailed"
	case OutcomeScriptFailed:
		return "ScriptFailed"
	case OutcomeStoreFailed:
		return "StoreFailed"
	default:
		return "Unknown"
	}
}

// Orchestrator 自动登录编排器。
//
// 每次获得焦点都会启动一个新的后台任务，不合并也不取消之前仍在等待的任务；
// 重叠的任务可能注入两次，其中一次可能落在已隐藏或已销毁的窗口上，那只是一次被吞掉的注入失败
type Orchestrator struct {
	injector  Injector
	store     credentials.Store
	emulation EmulationSource

	delay    atomic.Int64
	onResult func(name window.Name, outcome Outcome)

	wg sync.WaitGroup
}

// New 创建编排器
func New(injector Injector, store credentials.Store, emulation EmulationSource, delay time.Duration) *Orchestrator {
	o := &Orchestrator{
		injector:  injector,
		store:     store,
		emulation: emulation,
	}
	o.SetDelay(delay)
	return o
}

// SetDelay 修改注入前的等待时间，对之后启动的任务生效
func (o *Orchestrator) SetDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	o.delay.Store(int64(d))
}

// Delay 返回当前等待时间
func (o *Orchestrator) Delay() time.Duration {
	return time.Duration(o.delay.Load())
}

// OnResult 注册后台任务完成回调
func (o *Orchestrator) OnResult(fn func(name window.Name, outcome Outcome)) {
	o.onResult = fn
}

// OnFocusChanged 窗口焦点回调，运行在原生事件线程上，只负责派生后台任务
func (o *Orchestrator) OnFocusChanged(name window.Name, focused bool) {
	if !focused {
		return
	}
	svc, ok := name.Service()
	if !ok {
		return
	}
	o.Schedule(name, svc)
}

// Schedule 启动一个后台自动登录任务
func (o *Orchestrator) Schedule(name window.Name, svc service.Service) {
	id := uuid.NewString()[:8]
	delay := o.Delay()
	logger.Debug("autologin[%s] scheduled for %s in %v", id, name, delay)

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		time.Sleep(delay)
		outcome := o.run(id, name, svc)
		logger.Info("autologin[%s] %s: %s", id, name, outcome)
		if o.onResult != nil {
			o.onResult(name, outcome)
		}
	}()
}

// Wait 等待所有在途任务结束
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

func (o *Orchestrator) run(id string, name window.Name, svc service.Service) Outcome {
	if _, err := o.InjectEmulation(name); err != nil {
		logger.Warn("autologin[%s] emulation injection into %s failed: %v", id, name, err)
	}

	creds, found, err := o.store.Get(svc)
	if err != nil {
		logger.Error("autologin[%s] load credentials for %s: %v", id, svc, err)
		return OutcomeStoreFailed
	}
	if !found {
		return OutcomeNoCredentials
	}

	script, err := scripts.LoginScript(svc, creds.Username, creds.Password)
	if err != nil {
		logger.Error("autologin[%s] build login script: %v", id, err)
		return OutcomeScriptFailed
	}
	if err := o.injector.Eval(name, script); err != nil {
		logger.Warn("autologin[%s] login injection into %s failed: %v", id, name, err)
		return OutcomeInjectFailed
	}
	return OutcomeLoginInjected
}

// InjectEmulation 注入浏览器模拟脚本。脚本加载失败和注入失败都返回错误
func (o *Orchestrator) InjectEmulation(name window.Name) (bool, error) {
	body, err := o.emulation.Load()
	if err != nil {
		return false, err
	}
	if err := o.injector.Eval(name, body); err != nil {
		return false, err
	}
	return true, nil
}

// AutoLogin 立即对窗口执行登录注入。返回 false 表示没有保存凭证
func (o *Orchestrator) AutoLogin(name window.Name, svc service.Service) (bool, error) {
	creds, found, err := o.store.Get(svc)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	script, err := scripts.LoginScript(svc, creds.Username, creds.Password)
	if err != nil {
		return false, err
	}
	if err := o.injector.Eval(name, script); err != nil {
		return false, fmt.Errorf("auto login %s: %w", svc, err)
	}
	return true, nil
}
