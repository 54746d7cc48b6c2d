package adsclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	adsdomain "github.com/adaudit/campaign-audit-api/infrastructure/integrator/adsplatform/domain"
	"github.com/adaudit/campaign-audit-api/internal/config"
	"github.com/sirupsen/logrus"
)

// ErrTokenReissued sinaliza que o token expirou e foi renovado durante o
// tratamento da resposta; o chamador deve refazer a requisição.
var ErrTokenReissued = errors.New("token expirado e renovado, tente novamente")

// TokenManager gerencia tokens de acesso da API da plataforma
type TokenManager struct {
	cfg               *config.Config
	tokenRefreshMutex sync.Mutex
	stopRefresh       chan struct{}
}

// NewTokenManager cria uma nova instância do gerenciador de tokens
func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{
		cfg:         cfg,
		stopRefresh: make(chan struct{}),
	}
}

// InitToken garante um token de longa duração válido na subida do processo
func (tm *TokenManager) InitToken() {
	if tm.cfg.Platform.LongLivedToken == "" {
		logrus.Info("Token de longa duração não encontrado. Iniciando processo de obtenção...")
		if err := tm.InitiateToken(); err != nil {
			logrus.Errorf("Falha ao inicializar token de longa duração: %v", err)
			logrus.Warn("A sincronização da plataforma pode ter funcionalidade limitada até que o token seja configurado corretamente")
			return
		}

		logrus.Info("Token de longa duração inicializado com sucesso")
		return
	}

	if tm.cfg.Platform.TokenExpiresAt.IsZero() {
		// Já existe um token de longa duração, mas não sabemos quando expira
		logrus.Info("Validando token de longa duração existente...")
		if err := tm.ValidateExistingToken(); err != nil {
			logrus.Errorf("Falha ao validar token existente: %v", err)
			logrus.Warn("Tentando renovar o token...")
			if err := tm.RefreshToken(); err != nil {
				logrus.Errorf("Falha ao renovar token: %v", err)
			}
		}
		return
	}

	if err := tm.EnsureValidToken(); err != nil {
		logrus.Errorf("Erro ao verificar validade do token: %v", err)
	}
}

// StartAutoRefresh inicia uma goroutine que atualiza o token periodicamente
func (tm *TokenManager) StartAutoRefresh() {
	tm.InitToken()

	// Renovação diária, com folga para acontecer antes das 24h
	refreshInterval := 23 * time.Hour
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logrus.Info("Iniciando renovação periódica do token da plataforma")
			if err := tm.RefreshToken(); err != nil {
				logrus.Errorf("Erro na renovação periódica do token: %v", err)

				// Se falhar, tenta novamente em um intervalo mais curto
				ticker.Reset(1 * time.Hour)
			} else {
				logrus.Info("Renovação periódica do token concluída com sucesso")
				ticker.Reset(refreshInterval)
			}
		case <-tm.stopRefresh:
			logrus.Info("Encerrando goroutine de renovação periódica do token")
			return
		}
	}
}

// StopAutoRefresh para a goroutine de renovação automática
func (tm *TokenManager) StopAutoRefresh() {
	close(tm.stopRefresh)
}

// InitiateToken obtém um token de longa duração a partir do token de curta duração
func (tm *TokenManager) InitiateToken() error {
	tm.tokenRefreshMutex.Lock()
	defer tm.tokenRefreshMutex.Unlock()

	// Verificar novamente se o token já foi inicializado por outra goroutine
	if tm.cfg.Platform.LongLivedToken != "" {
		return nil
	}

	tokenResponse, err := GetLongLivedToken(
		tm.cfg.Platform.AccessToken,
		tm.cfg.Platform.AppID,
		tm.cfg.Platform.AppSecret,
		tm.cfg.Platform.BaseURL,
		tm.cfg.Platform.Version,
	)
	if err != nil {
		return fmt.Errorf("erro ao obter token de longa duração: %w", err)
	}

	tm.cfg.Platform.LongLivedToken = tokenResponse.AccessToken
	tm.cfg.Platform.TokenExpiresAt = CalculateTokenExpiration(tokenResponse.ExpiresIn)
	tm.cfg.Platform.AccessToken = tm.cfg.Platform.LongLivedToken

	logrus.Infof("Token de longa duração inicializado com sucesso. Expira em: %s",
		tm.cfg.Platform.TokenExpiresAt.Format(time.RFC3339))

	return nil
}

// ValidateExistingToken valida um token existente; inválido dispara renovação
func (tm *TokenManager) ValidateExistingToken() error {
	tm.tokenRefreshMutex.Lock()
	valid, err := CheckTokenValidity(tm.cfg.Platform.LongLivedToken, tm.cfg.Platform.URL)
	tm.tokenRefreshMutex.Unlock()
	if err != nil {
		return fmt.Errorf("erro ao verificar validade do token de longa duração: %w", err)
	}

	if !valid {
		return tm.RefreshToken()
	}

	tm.tokenRefreshMutex.Lock()
	tm.cfg.Platform.AccessToken = tm.cfg.Platform.LongLivedToken
	tm.tokenRefreshMutex.Unlock()

	return nil
}

// RefreshToken obtém um novo token de longa duração. Falhas aqui são fatais
// para a sincronização em andamento: o erro sobe, não há retry indefinido.
func (tm *TokenManager) RefreshToken() error {
	tm.tokenRefreshMutex.Lock()
	defer tm.tokenRefreshMutex.Unlock()

	if !tm.cfg.Platform.TokenExpiresAt.IsZero() && time.Until(tm.cfg.Platform.TokenExpiresAt) < 1*time.Hour {
		logrus.Warn("Token está muito próximo da expiração ou já expirou - pode ser necessária reautorização manual")
	}

	logrus.Info("Iniciando renovação do token...")
	tokenResponse, err := GetLongLivedToken(
		tm.cfg.Platform.AccessToken,
		tm.cfg.Platform.AppID,
		tm.cfg.Platform.AppSecret,
		tm.cfg.Platform.BaseURL,
		tm.cfg.Platform.Version,
	)
	if err != nil {
		logrus.Errorf("Erro ao renovar token: %v", err)
		return fmt.Errorf("erro ao obter novo token de longa duração: %w", err)
	}

	oldToken := tm.cfg.Platform.LongLivedToken
	tm.cfg.Platform.LongLivedToken = tokenResponse.AccessToken
	tm.cfg.Platform.TokenExpiresAt = CalculateTokenExpiration(tokenResponse.ExpiresIn)
	tm.cfg.Platform.AccessToken = tm.cfg.Platform.LongLivedToken

	if oldToken != tm.cfg.Platform.LongLivedToken {
		logrus.Infof("Token de longa duração atualizado com sucesso. Expira em: %s",
			tm.cfg.Platform.TokenExpiresAt.Format(time.RFC3339))
	} else {
		logrus.Info("Token renovado, mas não mudou. Isso pode indicar um problema na API da plataforma")
	}

	return nil
}

// EnsureValidToken verifica se o token atual é válido e tenta renová-lo se
// necessário. A leitura acontece sob o mutex de renovação: a goroutine de
// renovação automática escreve os mesmos campos.
func (tm *TokenManager) EnsureValidToken() error {
	tm.tokenRefreshMutex.Lock()
	accessToken := tm.cfg.Platform.AccessToken
	expiresAt := tm.cfg.Platform.TokenExpiresAt
	tm.tokenRefreshMutex.Unlock()

	if accessToken == "" {
		logrus.Info("Token não inicializado. Inicializando...")
		return tm.InitiateToken()
	}

	// Renovação proativa quando faltam menos de 24 horas
	if time.Until(expiresAt) < 24*time.Hour {
		logrus.Info("Token expira em menos de 24 horas. Renovando proativamente...")
		return tm.RefreshToken()
	}

	return nil
}

// AccessToken retorna o token corrente sob o mutex de renovação.
func (tm *TokenManager) AccessToken() string {
	tm.tokenRefreshMutex.Lock()
	defer tm.tokenRefreshMutex.Unlock()
	return tm.cfg.Platform.AccessToken
}

// HandleResponse lê a resposta HTTP e trata erros de token expirado e de
// limite de requisição. Respostas 200 retornam o corpo; token expirado
// dispara uma renovação e retorna ErrTokenReissued; outros erros viram
// *UpstreamError.
func (tm *TokenManager) HandleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	return nil, tm.handleErrorResponse(resp.StatusCode, body)
}

func (tm *TokenManager) handleErrorResponse(statusCode int, body []byte) error {
	var errResp adsdomain.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Code != 0 {
		if errResp.IsTokenExpired() {
			logrus.Warnf("Token expirado detectado pela API. Código: %d, Subcódigo: %d",
				errResp.Error.Code, errResp.Error.ErrorSubcode)

			if refreshErr := tm.RefreshToken(); refreshErr != nil {
				return fmt.Errorf("erro ao renovar token expirado: %w", refreshErr)
			}

			return ErrTokenReissued
		}

		return &UpstreamError{
			StatusCode: statusCode,
			Response:   &errResp,
		}
	}

	return &UpstreamError{
		StatusCode: statusCode,
		Body:       string(body),
	}
}
