package config

import (
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// UploadPolicy controls what the image ingestion pipeline accepts.
type UploadPolicy struct {
	MaxBytes     int64    `mapstructure:"maxBytes"`
	AllowedTypes []string `mapstructure:"allowedTypes"`
}

func DefaultUploadPolicy() UploadPolicy {
	return UploadPolicy{
		MaxBytes: DefaultUploadMaxBytes,
		AllowedTypes: []string{
			"image/jpeg",
			"image/png",
			"image/gif",
			"image/webp",
		},
	}
}

// Allows reports whether the declared MIME type is on the allow-list.
func (p UploadPolicy) Allows(mimeType string) bool {
	candidate := strings.ToLower(strings.TrimSpace(mimeType))
	for _, allowed := range p.AllowedTypes {
		if candidate == strings.ToLower(strings.TrimSpace(allowed)) {
			return true
		}
	}
	return false
}

// UploadPolicyHolder serves the current upload policy and hot-reloads it
// when the optional upload.yml changes.
type UploadPolicyHolder struct {
	current atomic.Value // holds UploadPolicy
}

// NewUploadPolicyHolder reads upload.yml when present, otherwise falls back
// to defaults overridden by env-level settings.
func NewUploadPolicyHolder(cfg Config, log *zap.Logger) (*UploadPolicyHolder, error) {
	v := viper.New()

	v.SetConfigName("upload")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/productify")
	v.AddConfigPath(".")

	v.SetEnvPrefix("PRODUCTIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultUploadPolicy()
	if cfg.UploadMaxBytes > 0 {
		defaults.MaxBytes = cfg.UploadMaxBytes
	}
	v.SetDefault("upload.maxBytes", defaults.MaxBytes)
	v.SetDefault("upload.allowedTypes", defaults.AllowedTypes)

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileFound = false
	}

	holder := &UploadPolicyHolder{}
	policy, err := unmarshalUploadPolicy(v, defaults)
	if err != nil {
		return nil, err
	}
	holder.current.Store(policy)

	if fileFound {
		v.OnConfigChange(func(_ fsnotify.Event) {
			reloaded, err := unmarshalUploadPolicy(v, defaults)
			if err != nil {
				if log != nil {
					log.Warn("upload policy reload failed", zap.Error(err))
				}
				return
			}
			holder.current.Store(reloaded)
			if log != nil {
				log.Info("upload policy reloaded",
					zap.Int64("max_bytes", reloaded.MaxBytes),
					zap.Strings("allowed_types", reloaded.AllowedTypes),
				)
			}
		})
		v.WatchConfig()
	}

	return holder, nil
}

// NewStaticUploadPolicyHolder pins the holder to a fixed policy. Intended
// for tests and tools that bypass file-based configuration.
func NewStaticUploadPolicyHolder(policy UploadPolicy) *UploadPolicyHolder {
	holder := &UploadPolicyHolder{}
	holder.current.Store(policy)
	return holder
}

// Current returns the active policy.
func (h *UploadPolicyHolder) Current() UploadPolicy {
	if h == nil {
		return DefaultUploadPolicy()
	}
	if policy, ok := h.current.Load().(UploadPolicy); ok {
		return policy
	}
	return DefaultUploadPolicy()
}

func unmarshalUploadPolicy(v *viper.Viper, defaults UploadPolicy) (UploadPolicy, error) {
	var policy UploadPolicy
	if err := v.UnmarshalKey("upload", &policy); err != nil {
		return UploadPolicy{}, err
	}
	if policy.MaxBytes <= 0 {
		policy.MaxBytes = defaults.MaxBytes
	}
	if len(policy.AllowedTypes) == 0 {
		policy.AllowedTypes = defaults.AllowedTypes
	}
	return policy, nil
}
