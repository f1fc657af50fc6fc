package readstate

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// Repository хранилище прочитанных ID уведомлений и сообщений
// Один SET на (роль, пользователь, тип); запись только добавлением
type Repository struct {
	client *redis.Client
}

// NewRepository создает новый экземпляр хранилища
func NewRepository(client *redis.Client) *Repository {
	return &Repository{client: client}
}

// ReadIDs возвращает множество прочитанных ID для области
func (r *Repository) ReadIDs(ctx context.Context, scope domain.Session, kind domain.ReadKind) (map[int64]struct{}, error) {
	key, err := readKey(scope, kind)
	if err != nil {
		return nil, err
	}

	members, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: ReadIDs - smembers %s: %v", ErrRedis, key, err)
	}

	ids := make(map[int64]struct{}, len(members))
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			// Посторонние значения в наборе игнорируются
			continue
		}
		ids[id] = struct{}{}
	}

	return ids, nil
}

// MarkRead добавляет ID в набор прочитанных; повторная отметка ничего не меняет
func (r *Repository) MarkRead(ctx context.Context, scope domain.Session, kind domain.ReadKind, id int64) error {
	key, err := readKey(scope, kind)
	if err != nil {
		return err
	}

	if err := r.client.SAdd(ctx, key, strconv.FormatInt(id, 10)).Err(); err != nil {
		return fmt.Errorf("%w: MarkRead - sadd %s: %v", ErrRedis, key, err)
	}

	return nil
}

func readKey(scope domain.Session, kind domain.ReadKind) (string, error) {
	if scope.UserID <= 0 || !scope.Role.IsValid() {
		return "", fmt.Errorf("%w: role=%s user=%d", ErrInvalidScope, scope.Role, scope.UserID)
	}
	if kind != domain.ReadKindNotifications && kind != domain.ReadKindMessages {
		return "", fmt.Errorf("%w: %s", ErrInvalidKind, kind)
	}
	return fmt.Sprintf("readstate:%s:%d:%s", scope.Role, scope.UserID, kind), nil
}
