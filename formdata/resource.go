package formdata

import (
	"context"

	"github.com/google/uuid"
)

// ResourceClient 는 참조 목록이 없는 단순 리소스 폼이 쓰는 REST 클라이언트 부분이다.
// *apiclient.Resource[T] 가 구현한다.
type ResourceClient[T any] interface {
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, body any) (T, error)
	Update(ctx context.Context, id string, body any) (T, error)
}

// NewResourceForm 은 REST 리소스 하나를 편집하는 폼을 만든다.
// id 가 비어 있으면 생성 모드이며 저장할 때 uuid 를 새로 부여한다.
// body 는 id 와 필드로 쓰기 요청 본문을 만든다.
func NewResourceForm[T, F any](client ResourceClient[T], id string, toFields func(*T) F, defaults F, body func(id string, fields F) any) *Form[T, F] {
	current := id

	load := func(ctx context.Context) (Bundle[T], error) {
		if current == "" {
			return Bundle[T]{}, nil
		}
		entity, err := client.Get(ctx, current)
		if err != nil {
			return Bundle[T]{}, err
		}
		return Bundle[T]{Primary: &entity}, nil
	}

	save := func(ctx context.Context, fields F, editing bool) (T, error) {
		if editing && current != "" {
			return client.Update(ctx, current, body(current, fields))
		}
		newID := uuid.NewString()
		saved, err := client.Create(ctx, body(newID, fields))
		if err == nil {
			current = newID
		}
		return saved, err
	}

	return NewForm(load, save, toFields, defaults)
}
