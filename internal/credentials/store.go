// Package credentials 按服务保存登录凭证
package credentials

import (
	"fmt"

	"chatdock/internal/service"
)

// Credentials 单个服务的凭证记录
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Service  string `json:"service"`
}

// Store 凭证存储。凭证不存在不是错误，由 found 返回
type Store interface {
	Save(svc service.Service, username, password string) error
	Get(svc service.Service) (creds Credentials, found bool, err error)
	Delete(svc service.Service) error
	List() ([]Credentials, error)
}

// Backend 存储后端名称
const (
	BackendFile    = "file"
	BackendKeyring = "keyring"
)

// Open 按后端名称创建存储
func Open(backend, dir string) (Store, error) {
	switch backend {
	case "", BackendFile:
		return NewFileStore(dir), nil
	case BackendKeyring:
		return NewKeyringStore(KeyringService), nil
	}
	return nil, fmt.Errorf("未知的凭证存储后端: %q", backend)
}

// checkService 只接受已知服务，越界的枚举值同样拒绝
func checkService(svc service.Service) error {
	for _, known := range service.All() {
		if svc == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %d", service.ErrUnknownService, int(svc))
}
