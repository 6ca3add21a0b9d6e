package models

// Reference 는 선택 목록을 채우고 외래 키를 표시 이름으로 바꾸는 데 쓰는 조회용 엔티티다.
type Reference struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ReferenceIndex 는 id 로 참조를 찾는 색인이다.
type ReferenceIndex map[string]Reference

// IndexReferences 는 refs 의 id 색인을 만든다. 중복이면 뒤의 것이 남는다.
func IndexReferences(refs []Reference) ReferenceIndex {
	idx := make(ReferenceIndex, len(refs))
	for _, r := range refs {
		idx[r.ID] = r
	}
	return idx
}

// Lookup 은 id 의 참조를 찾는다.
func (idx ReferenceIndex) Lookup(id string) (*Reference, bool) {
	r, ok := idx[id]
	if !ok {
		return nil, false
	}
	return &r, true
}

// NameOf 는 id 의 표시 이름이다. 참조가 없거나 이름이 비어 있으면 id 그대로다.
func (idx ReferenceIndex) NameOf(id string) string {
	if r, ok := idx[id]; ok && r.Name != "" {
		return r.Name
	}
	return id
}
