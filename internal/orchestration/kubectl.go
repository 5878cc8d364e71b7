package orchestration

import (
	"context"
	"io"
	"log/slog"
)

const (
	DefaultKubectlPath = "kubectl"

	serviceIPTemplate = "jsonpath={.spec.clusterIP}"
	podIPTemplate     = "jsonpath={.items[0].status.podIP}"
)

// KubectlOptions configures a Kubectl query. Zero values select kubectl
// from PATH, the ambient kubeconfig and ExecRunner.
type KubectlOptions struct {
	Path       string
	Kubeconfig string
	Runner     CmdRunner
	Logger     *slog.Logger
}

// Kubectl answers lookups by running kubectl.
type Kubectl struct {
	path       string
	kubeconfig string
	runner     CmdRunner
	logger     *slog.Logger
}

func NewKubectl(opts KubectlOptions) *Kubectl {
	k := &Kubectl{
		path:       opts.Path,
		kubeconfig: opts.Kubeconfig,
		runner:     opts.Runner,
		logger:     opts.Logger,
	}

	if k.path == "" {
		k.path = DefaultKubectlPath
	}
	if k.runner == nil {
		k.runner = ExecRunner{}
	}
	if k.logger == nil {
		k.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return k
}

func (k *Kubectl) ServiceIP(ctx context.Context, namespace, service string) (string, bool) {
	return k.lookup(ctx, "get", "svc", service, "-n", namespace, "-o", serviceIPTemplate)
}

func (k *Kubectl) PodIP(ctx context.Context, namespace, selector string) (string, bool) {
	return k.lookup(ctx, "get", "pods", "-n", namespace, "-l", selector, "-o", podIPTemplate)
}

func (k *Kubectl) lookup(ctx context.Context, args ...string) (string, bool) {
	if k.kubeconfig != "" {
		args = append(args, "--kubeconfig", k.kubeconfig)
	}

	out, err := k.runner.Run(ctx, k.path, args...)
	if err != nil {
		k.logger.Debug("kubectl lookup failed",
			slog.Any("args", args),
			slog.Any("err", err))
		return "", false
	}

	ip, ok := ParseIP(out)
	if !ok {
		k.logger.Debug("kubectl returned no usable address",
			slog.Any("args", args),
			slog.String("output", out))
	}

	return ip, ok
}
