package orchestration

import (
	"context"
	"io"
	"log/slog"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// API answers lookups through the Kubernetes API server.
type API struct {
	client kubernetes.Interface
	logger *slog.Logger
}

func NewAPI(client kubernetes.Interface, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &API{
		client: client,
		logger: logger,
	}
}

// NewAPIFromKubeconfig builds a clientset from kubeconfig, or from the
// in-cluster service account when kubeconfig is empty.
func NewAPIFromKubeconfig(kubeconfig string, logger *slog.Logger) (*API, error) {
	var (
		cfg *rest.Config
		err error
	)

	if kubeconfig == "" {
		cfg, err = rest.InClusterConfig()
	} else {
		cfg, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
	}
	if err != nil {
		return nil, err
	}

	client, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, err
	}

	return NewAPI(client, logger), nil
}

func (a *API) ServiceIP(ctx context.Context, namespace, service string) (string, bool) {
	svc, err := a.client.CoreV1().Services(namespace).Get(ctx, service, metav1.GetOptions{})
	if err != nil {
		a.logger.Debug("service lookup failed",
			slog.String("namespace", namespace),
			slog.String("service", service),
			slog.Any("err", err))
		return "", false
	}

	if svc.Spec.ClusterIP == corev1.ClusterIPNone {
		return "", false
	}

	return ParseIP(svc.Spec.ClusterIP)
}

// PodIP returns the IP of the first running pod that has one.
func (a *API) PodIP(ctx context.Context, namespace, selector string) (string, bool) {
	pods, err := a.client.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{LabelSelector: selector})
	if err != nil {
		a.logger.Debug("pod lookup failed",
			slog.String("namespace", namespace),
			slog.String("selector", selector),
			slog.Any("err", err))
		return "", false
	}

	for _, pod := range pods.Items {
		if pod.Status.Phase != corev1.PodRunning || pod.Status.PodIP == "" {
			continue
		}
		if ip, ok := ParseIP(pod.Status.PodIP); ok {
			return ip, true
		}
	}

	return "", false
}
