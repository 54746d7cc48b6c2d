package adsclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	adsdomain "github.com/adaudit/campaign-audit-api/infrastructure/integrator/adsplatform/domain"
	"github.com/adaudit/campaign-audit-api/pkg/retry"
	"github.com/sirupsen/logrus"
)

// BatchExecute multiplexa sub-requisições independentes em chamadas de batch
// da plataforma, em chunks limitados pelo tamanho máximo aceito pela API.
// Cada sub-resultado é inspecionado individualmente: limite de requisição é
// esperado sob carga e vira um placeholder nil em log de debug; qualquer
// outro sub-erro vira nil com um warning. A chamada nunca falha por causa de
// sub-requisições individuais — o retorno é parcial e o chamador precisa
// tratá-lo como tal. Contas grandes estouram a cota por hora com frequência;
// abortar a sincronização inteira na primeira sub-requisição limitada
// inviabilizaria a funcionalidade.
func (c *AdsClient) BatchExecute(accessToken string, requests []adsdomain.BatchSubRequest) []*adsdomain.BatchSubResponse {
	results := make([]*adsdomain.BatchSubResponse, len(requests))
	if len(requests) == 0 {
		return results
	}

	chunkSize := c.Cfg.Platform.BatchSize
	if chunkSize <= 0 {
		chunkSize = 50
	}

	totalChunks := (len(requests) + chunkSize - 1) / chunkSize

	for chunk := 0; chunk < totalChunks; chunk++ {
		start := chunk * chunkSize
		end := start + chunkSize
		if end > len(requests) {
			end = len(requests)
		}

		responses, err := c.executeChunk(accessToken, requests[start:end])
		if err != nil {
			// O chunk inteiro falhou após os retries; os sub-resultados ficam
			// nil e os chunks seguintes continuam sendo tentados
			logrus.WithFields(logrus.Fields{
				"chunk": chunk + 1,
				"total": totalChunks,
				"error": err.Error(),
			}).Warn("Chunk de batch falhou após as tentativas, seguindo para o próximo")
		} else {
			for i, resp := range responses {
				results[start+i] = c.inspectSubResponse(resp)
			}
		}

		if chunk < totalChunks-1 {
			time.Sleep(c.batchDelay())
		}
	}

	return results
}

// executeChunk envia um chunk como uma única chamada de rede ao endpoint de
// batch da plataforma.
func (c *AdsClient) executeChunk(accessToken string, requests []adsdomain.BatchSubRequest) ([]adsdomain.BatchSubResponse, error) {
	batchJSON, err := json.Marshal(requests)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar batch: %w", err)
	}

	var responses []adsdomain.BatchSubResponse

	err = retry.Do(func() error {
		// O formulário é remontado a cada tentativa: uma renovação de token
		// no meio dos retries invalidaria um token fixado aqui fora
		token := c.TokenManager.AccessToken()
		if token == "" {
			token = accessToken
		}

		form := url.Values{}
		form.Set("access_token", token)
		form.Set("batch", string(batchJSON))

		resp, err := c.httpClient.Post(
			c.Cfg.Platform.URL,
			"application/x-www-form-urlencoded",
			strings.NewReader(form.Encode()),
		)
		if err != nil {
			return err
		}

		body, err := c.TokenManager.HandleResponse(resp)
		resp.Body.Close()
		if err != nil {
			return err
		}

		responses = nil
		if err := json.Unmarshal(body, &responses); err != nil {
			logrus.WithError(err).Error("Erro ao decodificar resposta do batch")
			return err
		}

		return nil
	}, retry.Options{
		MaxRetries: c.maxRetries(),
		Base:       c.retryBase(),
		Classify:   ClassifyUpstreamError,
		Scope:      "adsclient.batch",
	})
	if err != nil {
		return nil, err
	}

	return responses, nil
}

// inspectSubResponse classifica um sub-resultado. Sub-requisições limitadas
// por cota são esperadas sob carga; qualquer outro erro é um aviso. Ambos
// resultam em nil para o chamador.
func (c *AdsClient) inspectSubResponse(resp adsdomain.BatchSubResponse) *adsdomain.BatchSubResponse {
	if resp.Code == http.StatusOK {
		r := resp
		return &r
	}

	if errResp := resp.ParseError(); errResp != nil {
		if errResp.IsRateLimited() {
			logrus.WithFields(logrus.Fields{
				"code":     errResp.Error.Code,
				"trace_id": errResp.Error.TraceID,
			}).Debug("Sub-requisição limitada por cota da plataforma")
			return nil
		}

		logrus.WithFields(logrus.Fields{
			"code":    errResp.Error.Code,
			"message": errResp.Error.Message,
		}).Warn("Sub-requisição do batch falhou")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"status": resp.Code,
	}).Warn("Sub-requisição do batch retornou status inesperado")
	return nil
}
