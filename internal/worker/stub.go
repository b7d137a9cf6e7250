package worker

import "context"

// Stub is a test double recording every call it receives. Each method
// name is independently configurable via the ExitCodes/ErrBufs maps keyed
// by method name, defaulting to a successful (0, "") result.
type Stub struct {
	ExitCodes map[string]int
	ErrBufs   map[string]string

	Calls []StubCall
}

// StubCall records one invocation made against a Stub.
type StubCall struct {
	Method   string
	Envelope string
	Argv     []string
}

func (s *Stub) result(method, envelope string, argv []string) Result {
	s.Calls = append(s.Calls, StubCall{Method: method, Envelope: envelope, Argv: argv})
	code := 0
	if s.ExitCodes != nil {
		code = s.ExitCodes[method]
	}
	var errBuf string
	if s.ErrBufs != nil {
		errBuf = s.ErrBufs[method]
	}
	return Result{ExitCode: code, ErrBuf: errBuf}
}

func (s *Stub) RunSync(ctx context.Context, envelope string) Result {
	return s.result("RunSync", envelope, nil)
}
func (s *Stub) RunDriftDetector(ctx context.Context, envelope string) Result {
	return s.result("RunDriftDetector", envelope, nil)
}
func (s *Stub) RunReleaseOrchestrator(ctx context.Context, envelope string) Result {
	return s.result("RunReleaseOrchestrator", envelope, nil)
}
func (s *Stub) RunMultiClusterOrchestrator(ctx context.Context, envelope string) Result {
	return s.result("RunMultiClusterOrchestrator", envelope, nil)
}
func (s *Stub) RunRBACManager(ctx context.Context, envelope string) Result {
	return s.result("RunRBACManager", envelope, nil)
}
func (s *Stub) RunK8sInfo(ctx context.Context, envelope string) Result {
	return s.result("RunK8sInfo", envelope, nil)
}
func (s *Stub) RunPolicyEngine(ctx context.Context, envelope string) Result {
	return s.result("RunPolicyEngine", envelope, nil)
}
func (s *Stub) RunRunnerManager(ctx context.Context, envelope string) Result {
	return s.result("RunRunnerManager", envelope, nil)
}
func (s *Stub) RunHealthManager(ctx context.Context, envelope string) Result {
	return s.result("RunHealthManager", envelope, nil)
}
func (s *Stub) RunSecretSync(ctx context.Context, envelope string) Result {
	return s.result("RunSecretSync", envelope, nil)
}
func (s *Stub) RunSecretRotation(ctx context.Context, envelope string) Result {
	return s.result("RunSecretRotation", envelope, nil)
}
func (s *Stub) RunPreviewManager(ctx context.Context, envelope string) Result {
	return s.result("RunPreviewManager", envelope, nil)
}
func (s *Stub) RunLocalDev(ctx context.Context, argv []string) Result {
	return s.result("RunLocalDev", "", argv)
}
