package utils

// 记录里可能缺失的字段都是指针, nil 表示 "没出现过", 与零值区分开.

func Ptr[T any](v T) *T {
	return &v
}

// Val 返回 *p, p为nil时返回零值
func Val[T any](p *T) (r T) {
	if p != nil {
		r = *p
	}
	return
}

// 若 *p 为nil, 则赋为 def
func SetDefault[T any](p **T, def T) {
	if *p == nil {
		*p = &def
	}
}

// ClonePtr 复制指向的值, 两个记录之间不能共享同一个指针
func ClonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func CloneSlice[T any](a []T) (r []T) {
	if a == nil {
		return nil
	}
	r = make([]T, len(a))
	copy(r, a)
	return
}
