package adsclient

import (
	"errors"
	"fmt"
	"net/http"

	adsdomain "github.com/adaudit/campaign-audit-api/infrastructure/integrator/adsplatform/domain"
)

// UpstreamError é um erro estruturado da API da plataforma.
type UpstreamError struct {
	StatusCode int
	Response   *adsdomain.ErrorResponse
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Response != nil {
		return fmt.Sprintf("erro na resposta da API. Status: %d, Código: %d, Mensagem: %s",
			e.StatusCode, e.Response.Error.Code, e.Response.Error.Message)
	}
	return fmt.Sprintf("erro na resposta da API. Status: %d, Corpo: %s", e.StatusCode, e.Body)
}

// RateLimited verifica se o erro carrega um código de limite de requisição.
func (e *UpstreamError) RateLimited() bool {
	return e.Response != nil && e.Response.IsRateLimited()
}

// ClassifyUpstreamError decide se vale tentar novamente uma chamada à
// plataforma: erros de rede e limites de requisição são transitórios;
// respostas 5xx também; o restante é fatal.
func ClassifyUpstreamError(err error) bool {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.RateLimited() || upstream.StatusCode >= http.StatusInternalServerError
	}

	if errors.Is(err, ErrTokenReissued) {
		return true
	}

	// Erros de transporte (timeout, conexão recusada) são transitórios
	return true
}
