package adsdomain

// Códigos numéricos de erro da plataforma que indicam limite de requisições.
// Conjunto fechado: a detecção de rate limit passa exclusivamente por aqui.
const (
	CodeAppRateLimit     = 4     // Limite de chamadas do aplicativo
	CodeTooManyCalls     = 17    // Limite de chamadas do usuário
	CodeUserRequestLimit = 613   // Limite de requisições por hora
	CodeAdsRateLimit     = 80004 // Limite específico da API de anúncios
)

// Códigos e subcódigos de token expirado.
const (
	CodeTokenExpired = 190

	SubcodeSessionInvalidated = 460
	SubcodeTokenExpired       = 463
	SubcodePasswordChanged    = 467
)

// IsRateLimitCode verifica se o código pertence ao conjunto de limites de
// requisição. Função pura; não inspeciona strings de mensagem.
func IsRateLimitCode(code int) bool {
	switch code {
	case CodeAppRateLimit, CodeTooManyCalls, CodeUserRequestLimit, CodeAdsRateLimit:
		return true
	}
	return false
}

// ErrorResponse representa a estrutura de erro da API da plataforma
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API da plataforma
type ErrorDetails struct {
	Message      string      `json:"message"`
	Type         string      `json:"type"`
	Code         int         `json:"code"`
	ErrorSubcode int         `json:"error_subcode,omitempty"`
	TraceID      string      `json:"fbtrace_id"`
	ErrorData    interface{} `json:"error_data,omitempty"`
}

// IsTokenExpired verifica se o erro é de token expirado
func (e *ErrorResponse) IsTokenExpired() bool {
	return e.Error.Code == CodeTokenExpired ||
		(e.Error.Type == "OAuthException" &&
			(e.Error.ErrorSubcode == SubcodeSessionInvalidated ||
				e.Error.ErrorSubcode == SubcodeTokenExpired ||
				e.Error.ErrorSubcode == SubcodePasswordChanged))
}

// IsRateLimited verifica se o erro é de limite de requisições
func (e *ErrorResponse) IsRateLimited() bool {
	return IsRateLimitCode(e.Error.Code)
}
