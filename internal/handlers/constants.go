package handlers

// Messages returned in {"error": ...} bodies
const (
	ErrUnauthorized        = "Unauthorized"
	ErrInvalidLogin        = "Login inválido."
	ErrInvalidCode         = "Código inválido."
	ErrCodeNotFound        = "Código não encontrado."
	ErrFamilyNotFound      = "Família não encontrada."
	ErrCodeExhausted       = "Não foi possível gerar código único."
	ErrTooManyRequests     = "Muitas tentativas. Tente novamente em instantes."
	ErrSaveFamily          = "Erro ao salvar família."
	ErrUpdateFamily        = "Erro ao atualizar família."
	ErrDeleteFamily        = "Erro ao remover família."
	ErrLoadFamilies        = "Erro ao carregar famílias."
	ErrLoadSummary         = "Erro ao carregar resumo."
	ErrLookupCode          = "Erro ao buscar convite."
	ErrSaveConfirmations   = "Erro ao salvar confirmações."
	ErrLogin               = "Erro ao fazer login."
	ErrInternalServerError = "Erro interno."
)
