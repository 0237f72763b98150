package database

// StoreStatus 启动诊断用的存储状态
type StoreStatus struct {
	IsInitialized bool   `json:"is_initialized"`
	Version       int    `json:"version"`   // 可写库结构版本
	LastSync      string `json:"last_sync"` // 参考库最近一次刷新时间，ISO-8601
	ReferencePath string `json:"reference_path,omitempty"`
	WritablePath  string `json:"writable_path,omitempty"`
	Sealed        bool   `json:"sealed"` // 参考库是否已切换为只读
}
