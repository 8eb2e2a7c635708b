package exercise

import (
	"context"
	"errors"
	"fmt"
	"runtime/metrics"
	"strings"
	"sync/atomic"
	"time"

	"creai_edu_backend/internal/config"
	"creai_edu_backend/internal/model"
	"creai_edu_backend/internal/util"

	"github.com/dop251/goja"
	"golang.org/x/sync/semaphore"
)

const (
	defaultTimeout       = 2 * time.Second
	defaultMaxCodeBytes  = 16 << 10
	defaultMaxMemory     = 64 << 20
	defaultMaxConcurrent = 4

	maxCallStackSize   = 256
	memoryPollInterval = 2 * time.Millisecond

	// MsgNetworkDenied 与前端展示的文案保持一致
	MsgNetworkDenied = "Operaciones de red no permitidas"
	MsgTimeout       = "Tiempo de ejecución excedido"
	MsgMemory        = "Memoria excedida"
)

var (
	errTimeout = errors.New(MsgTimeout)
	errMemory  = errors.New(MsgMemory)
)

const heapObjectsMetric = "/memory/classes/heap/objects:bytes"

// Output 一次自由运行的结果，Err 非空时 Value 为 "Error: <原因>"
type Output struct {
	Value    string        `json:"value"`
	Logs     []string      `json:"logs,omitempty"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"-"`
}

func (o Output) Failed() bool {
	return o.Err != nil
}

// Sandbox 每次执行都创建新的 goja 运行时，不暴露任何宿主能力。
// 同时执行的脚本数受 slots 限制，每个脚本的堆增长由 watchMemory 监控
type Sandbox struct {
	timeout      atomic.Int64
	maxCodeBytes int
	maxMemory    uint64
	slots        *semaphore.Weighted
	denylist     []string
}

func NewSandbox(cfg config.SandboxConfig) *Sandbox {
	s := &Sandbox{
		maxCodeBytes: cfg.MaxCodeBytes,
		maxMemory:    uint64(cfg.MaxMemoryMB) << 20,
		denylist:     cfg.Denylist,
	}
	if s.maxCodeBytes <= 0 {
		s.maxCodeBytes = defaultMaxCodeBytes
	}
	if cfg.MaxMemoryMB <= 0 {
		s.maxMemory = defaultMaxMemory
	}
	concurrent := cfg.MaxConcurrent
	if concurrent <= 0 {
		concurrent = defaultMaxConcurrent
	}
	s.slots = semaphore.NewWeighted(int64(concurrent))
	if s.denylist == nil {
		s.denylist = []string{"fetch", "XMLHttpRequest", "import"}
	}
	s.SetTimeout(time.Duration(cfg.TimeoutMs) * time.Millisecond)
	return s
}

// SetTimeout 配置热加载时调用，对之后的执行生效
func (s *Sandbox) SetTimeout(d time.Duration) {
	if d <= 0 {
		d = defaultTimeout
	}
	s.timeout.Store(int64(d))
}

func (s *Sandbox) Timeout() time.Duration {
	return time.Duration(s.timeout.Load())
}

// CheckSize 保存代码（会话编辑）时也要校验长度
func (s *Sandbox) CheckSize(code string) error {
	if len(code) > s.maxCodeBytes {
		return util.NewError(util.ErrValidation, "code exceeds %d bytes", s.maxCodeBytes)
	}
	return nil
}

// Check 在执行前拒绝超长代码与黑名单中的标识符
func (s *Sandbox) Check(code string) error {
	if err := s.CheckSize(code); err != nil {
		return err
	}
	for _, word := range s.denylist {
		if word != "" && strings.Contains(code, word) {
			return util.NewError(util.ErrUnsafeInput, MsgNetworkDenied)
		}
	}
	return nil
}

// Run 以空字符串作为 input 执行代码，返回 result 变量的字符串形式
func (s *Sandbox) Run(ctx context.Context, code string) Output {
	start := time.Now()
	if err := s.Check(code); err != nil {
		return Output{Value: errorText(err), Err: err, Duration: time.Since(start)}
	}
	value, ok, logs, err := s.execute(ctx, code, "")
	out := Output{Logs: logs, Duration: time.Since(start)}
	switch {
	case err != nil:
		out.Err = err
		out.Value = errorText(err)
	case ok:
		out.Value = value
	}
	return out
}

// RunCase 代码出错、超时或没有 result 时都视为未通过
func (s *Sandbox) RunCase(ctx context.Context, code string, tc model.TestCase) bool {
	if s.Check(code) != nil {
		return false
	}
	value, ok, _, err := s.execute(ctx, code, tc.Input)
	if err != nil || !ok {
		return false
	}
	return value == tc.Expected
}

// 用户代码放进函数体，input 作为参数；返回 null 表示没有 result
const wrapperPrefix = "(function(input) {\n"
const wrapperSuffix = "\nreturn (typeof result !== 'undefined' && result !== null) ? String(result) : null;\n})"

func (s *Sandbox) execute(ctx context.Context, code, input string) (value string, ok bool, logs []string, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout())
	defer cancel()

	if err := s.slots.Acquire(ctx, 1); err != nil {
		return "", false, nil, errTimeout
	}
	defer s.slots.Release(1)

	vm := goja.New()
	vm.SetMaxCallStackSize(maxCallStackSize)
	stop := context.AfterFunc(ctx, func() {
		vm.Interrupt(errTimeout)
	})
	defer stop()
	defer s.watchMemory(ctx, vm)()

	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = fmt.Errorf("%v", r)
		}
	}()

	console := vm.NewObject()
	_ = console.Set("log", func(call goja.FunctionCall) goja.Value {
		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			parts = append(parts, arg.String())
		}
		logs = append(logs, strings.Join(parts, " "))
		return goja.Undefined()
	})
	_ = vm.Set("console", console)

	fnValue, err := vm.RunString(wrapperPrefix + code + wrapperSuffix)
	if err != nil {
		return "", false, logs, runtimeError(err)
	}
	fn, isFunc := goja.AssertFunction(fnValue)
	if !isFunc {
		return "", false, logs, errors.New("invalid program")
	}
	res, err := fn(goja.Undefined(), vm.ToValue(input))
	if err != nil {
		return "", false, logs, runtimeError(err)
	}
	if res == nil || goja.IsNull(res) || goja.IsUndefined(res) {
		return "", false, logs, nil
	}
	return res.String(), true, logs, nil
}

// watchMemory 堆增长超过 maxMemory 时中断脚本，返回的函数用于停止监控
func (s *Sandbox) watchMemory(ctx context.Context, vm *goja.Runtime) func() {
	done := make(chan struct{})
	base := heapObjectBytes()
	go func() {
		ticker := time.NewTicker(memoryPollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if heapObjectBytes() > base+s.maxMemory {
					vm.Interrupt(errMemory)
					return
				}
			}
		}
	}()
	return func() { close(done) }
}

func heapObjectBytes() uint64 {
	sample := []metrics.Sample{{Name: heapObjectsMetric}}
	metrics.Read(sample)
	if sample[0].Value.Kind() != metrics.KindUint64 {
		return 0
	}
	return sample[0].Value.Uint64()
}

// runtimeError 取 JS 异常的 message，中断时返回中断原因（超时或内存）
func runtimeError(err error) error {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		if reason, ok := interrupted.Value().(error); ok {
			return reason
		}
		return errTimeout
	}
	var exception *goja.Exception
	if errors.As(err, &exception) {
		if obj, isObj := exception.Value().(*goja.Object); isObj {
			if msg := obj.Get("message"); msg != nil && !goja.IsUndefined(msg) {
				return errors.New(msg.String())
			}
		}
		return errors.New(exception.Value().String())
	}
	var syntaxErr *goja.CompilerSyntaxError
	if errors.As(err, &syntaxErr) {
		return errors.New(syntaxErr.Message)
	}
	return err
}

func errorText(err error) string {
	var domainErr *util.DomainError
	if errors.As(err, &domainErr) {
		return "Error: " + domainErr.Message
	}
	return "Error: " + err.Error()
}
