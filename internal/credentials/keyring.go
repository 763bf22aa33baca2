package credentials

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"chatdock/internal/service"
)

// KeyringService 系统钥匙串中的服务名
const KeyringService = "chatdock"

// KeyringStore 把凭证记录以 JSON 形式存入系统钥匙串，账户名为服务名
type KeyringStore struct {
	service string
}

// NewKeyringStore 创建钥匙串存储
func NewKeyringStore(name string) *KeyringStore {
	return &KeyringStore{service: name}
}

// Save 保存凭证
func (s *KeyringStore) Save(svc service.Service, username, password string) error {
	if err := checkService(svc); err != nil {
		return err
	}
	data, err := json.Marshal(Credentials{
		Username: username,
		Password: password,
		Service:  svc.String(),
	})
	if err != nil {
		return fmt.Errorf("序列化凭证失败: %w", err)
	}
	if err := keyring.Set(s.service, svc.String(), string(data)); err != nil {
		return fmt.Errorf("写入钥匙串失败: %w", err)
	}
	return nil
}

// Get 读取凭证
func (s *KeyringStore) Get(svc service.Service) (Credentials, bool, error) {
	if err := checkService(svc); err != nil {
		return Credentials{}, false, err
	}
	secret, err := keyring.Get(s.service, svc.String())
	if errors.Is(err, keyring.ErrNotFound) {
		return Credentials{}, false, nil
	}
	if err != nil {
		return Credentials{}, false, fmt.Errorf("读取钥匙串失败: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(secret), &creds); err != nil {
		return Credentials{}, false, fmt.Errorf("解析凭证失败: %w", err)
	}
	return creds, true, nil
}

// Delete 删除凭证，不存在时视为成功
func (s *KeyringStore) Delete(svc service.Service) error {
	if err := checkService(svc); err != nil {
		return err
	}
	err := keyring.Delete(s.service, svc.String())
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("删除钥匙串条目失败: %w", err)
	}
	return nil
}

// List 钥匙串不支持枚举，逐个探测已知服务
func (s *KeyringStore) List() ([]Credentials, error) {
	var out []Credentials
	for _, svc := range service.All() {
		creds, found, err := s.Get(svc)
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, creds)
		}
	}
	return out, nil
}
