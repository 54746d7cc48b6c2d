package adsdomain

import "encoding/json"

// BatchSubRequest é uma unidade independente de trabalho multiplexada em uma
// chamada de batch (ex.: "GET insights do anúncio 123").
type BatchSubRequest struct {
	Method      string `json:"method"`
	RelativeURL string `json:"relative_url"`
}

// BatchSubResponse é o resultado de uma sub-requisição dentro da resposta do
// endpoint de batch. Code é o status HTTP da sub-requisição; Body vem como
// string JSON a ser decodificada pelo chamador.
type BatchSubResponse struct {
	Code int    `json:"code"`
	Body string `json:"body"`
}

// DecodeBody decodifica o corpo da sub-resposta no destino informado.
func (r *BatchSubResponse) DecodeBody(dst interface{}) error {
	return json.Unmarshal([]byte(r.Body), dst)
}

// ParseError tenta extrair a estrutura de erro do corpo da sub-resposta.
func (r *BatchSubResponse) ParseError() *ErrorResponse {
	var errResp ErrorResponse
	if err := json.Unmarshal([]byte(r.Body), &errResp); err != nil {
		return nil
	}
	if errResp.Error.Code == 0 && errResp.Error.Message == "" {
		return nil
	}
	return &errResp
}
