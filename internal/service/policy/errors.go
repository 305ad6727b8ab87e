package policy

import "errors"

var (
	// ErrPolicyNotFound политика не найдена
	ErrPolicyNotFound = errors.New("policy: policy not found")

	// ErrServiceNotFound услуга не найдена в MerchantService
	ErrServiceNotFound = errors.New("policy: service not found")

	// ErrServiceStoreMismatch услуга не принадлежит указанному магазину
	ErrServiceStoreMismatch = errors.New("policy: service does not belong to store")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("policy: invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("policy: internal error")
)
