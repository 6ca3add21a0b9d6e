// Package formdata 는 BFF 폼 번들을 다룬다. 한 번의 요청으로 편집 대상과
// 폼에 필요한 참조 목록을 모두 받는다.
package formdata

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"orion-console/models"
)

// Bundle 은 BFF 폼 번들이다. 생성 모드에서는 Primary 가 nil 이다.
type Bundle[T any] struct {
	Primary    *T
	References map[string][]models.Reference
}

// LoadFunc 는 번들 전체를 한 번의 요청으로 읽는다.
type LoadFunc[T any] func(ctx context.Context) (Bundle[T], error)

// SaveFunc 는 fields 를 저장한다. editing 이면 생성 대신 수정한다.
type SaveFunc[T, F any] func(ctx context.Context, fields F, editing bool) (T, error)

// Normalizer 를 구현한 필드는 검증 전에 공백 정리를 한다.
type Normalizer interface {
	Normalize()
}

var ErrValidation = errors.New("validation failed")

// ValidationError 는 실패한 필드를 json 이름으로 담는다.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate 는 fields 를 검증하고 실패를 *ValidationError 로 바꾼다.
func Validate(fields any) error {
	err := validate.Struct(fields)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = fe.Tag()
	}
	return out
}

// Form 은 번들 하나로 채워지는 엔티티 폼의 상태다.
type Form[T, F any] struct {
	load     LoadFunc[T]
	save     SaveFunc[T, F]
	toFields func(*T) F
	defaults F

	mu         sync.Mutex
	bundle     Bundle[T]
	fields     F
	loaded     bool
	loading    bool
	submitting bool
	err        error
}

// NewForm 은 폼을 만든다. toFields 는 읽어온 엔티티에서 필드를 만들고
// 엔티티가 없으면 defaults 를 쓴다.
func NewForm[T, F any](load LoadFunc[T], save SaveFunc[T, F], toFields func(*T) F, defaults F) *Form[T, F] {
	return &Form[T, F]{
		load:     load,
		save:     save,
		toFields: toFields,
		defaults: defaults,
		fields:   defaults,
	}
}

// Load 는 번들 요청을 정확히 한 번 보낸다. 실패하면 참조 목록을 모두 비우고
// Err 에 실패를 남긴다.
func (f *Form[T, F]) Load(ctx context.Context) error {
	f.mu.Lock()
	f.loading = true
	f.err = nil
	f.mu.Unlock()

	b, err := f.load(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if err != nil {
		f.bundle = Bundle[T]{References: map[string][]models.Reference{}}
		f.loaded = false
		f.err = err
		return err
	}
	if b.References == nil {
		b.References = map[string][]models.Reference{}
	}
	f.bundle = b
	f.loaded = true
	if b.Primary != nil {
		f.fields = f.toFields(b.Primary)
	} else {
		f.fields = f.defaults
	}
	return nil
}

// Update 는 입력된 필드를 바꾼다.
func (f *Form[T, F]) Update(fn func(*F)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.fields)
}

// Submit 은 필드를 정리, 검증한 뒤 저장한다. 검증에 실패하면 아무것도 보내지 않는다.
// 저장이 실패해도 입력된 필드는 남는다.
func (f *Form[T, F]) Submit(ctx context.Context) (T, error) {
	var zero T

	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return zero, errors.New("submit already in progress")
	}
	if n, ok := any(&f.fields).(Normalizer); ok {
		n.Normalize()
	}
	fields := f.fields
	editing := f.bundle.Primary != nil
	if err := Validate(fields); err != nil {
		f.err = err
		f.mu.Unlock()
		return zero, err
	}
	f.submitting = true
	f.err = nil
	f.mu.Unlock()

	saved, err := f.save(ctx, fields, editing)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		f.err = err
		return zero, err
	}
	f.bundle.Primary = &saved
	return saved, nil
}

// IsEditing 은 기존 엔티티를 편집 중인지 알려준다.
func (f *Form[T, F]) IsEditing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bundle.Primary != nil
}

func (f *Form[T, F]) Loaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded
}

func (f *Form[T, F]) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

func (f *Form[T, F]) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Fields 는 현재 필드 값의 복사본이다.
func (f *Form[T, F]) Fields() F {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Primary 는 편집 대상 엔티티다. 생성 모드에서는 nil 이다.
func (f *Form[T, F]) Primary() *T {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bundle.Primary == nil {
		return nil
	}
	p := *f.bundle.Primary
	return &p
}

// References 는 이름에 해당하는 참조 목록이다. 예: "positions"
func (f *Form[T, F]) References(name string) []models.Reference {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Reference(nil), f.bundle.References[name]...)
}

// Err 는 마지막 로드/검증/저장 실패다.
func (f *Form[T, F]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// ResolveName 은 id 에 해당하는 참조 이름을 돌려준다. 없으면 id 그대로다.
func ResolveName(refs []models.Reference, id string) string {
	return models.IndexReferences(refs).NameOf(id)
}
