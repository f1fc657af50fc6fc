package confirmation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/pkg/psqlbuilder"
)

const tableName = "payment_confirmations"

var columns = []string{
	"id",
	"payment_id",
	"reservation_id",
	"gateway_confirmation_id",
	"state",
	"attempts",
	"last_error",
	"created_at",
	"updated_at",
}

const returningColumns = "RETURNING id, payment_id, reservation_id, gateway_confirmation_id, state, attempts, last_error, created_at, updated_at"

// Repository журнал подтверждений оплаты
// payment_id уникален, поэтому переход EN_ATTENTE -> CONFIRMEE выполняется не более одного раза
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Claim создает запись в состоянии pending, если ее еще нет.
// Возвращает true, если запись создана этим вызовом; иначе существующую запись и false.
func (r *Repository) Claim(ctx context.Context, paymentID, reservationID int64, gatewayID string) (*domain.PaymentConfirmation, bool, error) {
	query, args, err := psqlbuilder.Insert(tableName).
		Columns("payment_id", "reservation_id", "gateway_confirmation_id", "state").
		Values(paymentID, reservationID, gatewayID, domain.ConfirmationPending).
		Suffix("ON CONFLICT (payment_id) DO NOTHING " + returningColumns).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("%w: Claim - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := scanConfirmation(r.db.QueryRowContext(ctx, query, args...))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("%w: Claim - execute insert: %v", ErrExecQuery, err)
	}

	// Конфликт по payment_id: запись уже принадлежит другому вызову
	existing, err := r.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// Reclaim переводит запись обратно в pending для повторной попытки.
// Срабатывает для failed, а также для pending, не обновлявшейся с момента staleBefore
// (процесс, владевший записью, завершился посреди уведомления бэкенда).
func (r *Repository) Reclaim(ctx context.Context, paymentID int64, gatewayID string, staleBefore time.Time) (bool, error) {
	query, args, err := psqlbuilder.Update(tableName).
		Set("state", domain.ConfirmationPending).
		Set("gateway_confirmation_id", gatewayID).
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"payment_id": paymentID}).
		Where(squirrel.Or{
			squirrel.Eq{"state": domain.ConfirmationFailed},
			squirrel.And{
				squirrel.Eq{"state": domain.ConfirmationPending},
				squirrel.Lt{"updated_at": staleBefore},
			},
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Reclaim - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Reclaim - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Reclaim - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// MarkConfirmed фиксирует успешное уведомление бэкенда
func (r *Repository) MarkConfirmed(ctx context.Context, paymentID int64) error {
	return r.setState(ctx, "MarkConfirmed", paymentID, domain.ConfirmationConfirmed, "")
}

// MarkFailed фиксирует неудачу; запись попадает в список несверенных
func (r *Repository) MarkFailed(ctx context.Context, paymentID int64, reason string) error {
	return r.setState(ctx, "MarkFailed", paymentID, domain.ConfirmationFailed, reason)
}

func (r *Repository) setState(ctx context.Context, op string, paymentID int64, state domain.ConfirmationState, reason string) error {
	query, args, err := psqlbuilder.Update(tableName).
		Set("state", state).
		Set("last_error", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"payment_id": paymentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrConfirmationNotFound
	}

	return nil
}

// Record записывает итоговое состояние без прохождения через pending.
// Используется, когда бронирование уже подтверждено или истекло до начала подтверждения.
// Запись в состоянии confirmed не перезаписывается.
func (r *Repository) Record(ctx context.Context, c *domain.PaymentConfirmation) error {
	if c.State != domain.ConfirmationConfirmed && c.State != domain.ConfirmationFailed {
		return fmt.Errorf("%w: Record - %s", ErrInvalidState, c.State)
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("payment_id", "reservation_id", "gateway_confirmation_id", "state", "last_error").
		Values(c.PaymentID, c.ReservationID, c.GatewayConfirmationID, c.State, c.LastError).
		Suffix("ON CONFLICT (payment_id) DO UPDATE SET state = EXCLUDED.state, last_error = EXCLUDED.last_error, " +
			"updated_at = NOW() WHERE payment_confirmations.state <> 'confirmed'").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Record - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Record - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByPaymentID получает запись по ID платежа
func (r *Repository) GetByPaymentID(ctx context.Context, paymentID int64) (*domain.PaymentConfirmation, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"payment_id": paymentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPaymentID - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanConfirmation(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfirmationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPaymentID - scan confirmation: %v", ErrScanRow, err)
	}

	return c, nil
}

// ListByState получает записи в указанном состоянии, последние изменения первыми
func (r *Repository) ListByState(ctx context.Context, state domain.ConfirmationState) ([]*domain.PaymentConfirmation, error) {
	if !state.IsValid() {
		return nil, fmt.Errorf("%w: ListByState - %s", ErrInvalidState, state)
	}

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"state": state}).
		OrderBy("updated_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByState - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByState - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.PaymentConfirmation, 0)
	for rows.Next() {
		c, err := scanConfirmation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByState - scan confirmation: %v", ErrScanRow, err)
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByState - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func scanConfirmation(row scanner) (*domain.PaymentConfirmation, error) {
	var c domain.PaymentConfirmation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.PaymentID,
		&c.ReservationID,
		&c.GatewayConfirmationID,
		&c.State,
		&c.Attempts,
		&c.LastError,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}
