package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"chatdock/internal/service"
)

// FileStore 每个服务一个 JSON 文件：<dir>/<service>.json。
// 明文保存，整文件覆盖写入
type FileStore struct {
	dir string
}

// NewFileStore 创建文件存储
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir 返回存储目录
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(svc service.Service) string {
	return filepath.Join(s.dir, svc.String()+".json")
}

// Save 保存凭证，目录不存在时创建
func (s *FileStore) Save(svc service.Service, username, password string) error {
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

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("创建凭证目录失败: %w", err)
	}
	if err := os.WriteFile(s.path(svc), data, 0600); err != nil {
		return fmt.Errorf("写入凭证失败: %w", err)
	}
	return nil
}

// Get 读取凭证，文件不存在时 found 为 false
func (s *FileStore) Get(svc service.Service) (Credentials, bool, error) {
	if err := checkService(svc); err != nil {
		return Credentials{}, false, err
	}

	data, err := os.ReadFile(s.path(svc))
	if errors.Is(err, fs.ErrNotExist) {
		return Credentials{}, false, nil
	}
	if err != nil {
		return Credentials{}, false, fmt.Errorf("读取凭证失败: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, false, fmt.Errorf("解析凭证失败 %s: %w", s.path(svc), err)
	}
	return creds, true, nil
}

// Delete 删除凭证，文件不存在时视为成功
func (s *FileStore) Delete(svc service.Service) error {
	if err := checkService(svc); err != nil {
		return err
	}
	err := os.Remove(s.path(svc))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("删除凭证失败: %w", err)
	}
	return nil
}

// List 返回所有已保存的凭证，按服务顺序
func (s *FileStore) List() ([]Credentials, error) {
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
