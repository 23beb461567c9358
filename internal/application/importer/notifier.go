package importer

import (
	"github.com/jhoicas/Importador-api/internal/domain/entity"
	"github.com/jhoicas/Importador-api/pkg/logger"
)

var _ Notifier = (*LogNotifier)(nil)

// LogNotifier implementación por defecto del sink de eventos: registra en el
// log estructurado. Se usa cuando no hay broker configurado.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) CustomerInserted(customer *entity.Customer) {
	n.log.Info().Int64("customer_id", customer.ID).Str("email", customer.Email).Msg("cliente insertado")
}

func (n *LogNotifier) CustomerUpdated(customer *entity.Customer) {
	n.log.Info().Int64("customer_id", customer.ID).Str("email", customer.Email).Msg("cliente actualizado")
}
