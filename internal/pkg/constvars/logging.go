package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingOperatorKey           = "operator"
	LoggingAuditActionKey        = "audit_action"
	LoggingProtocolIDKey         = "protocol_id"
	LoggingProtocolCodeKey       = "prot"
	LoggingProtocolsCountKey     = "protocols_count"
	LoggingSecretariaCountKey    = "secretaria_count"
	LoggingFilterTypeKey         = "filter_type"
	LoggingFilterValueKey        = "filter_value"
	LoggingFolderPathKey         = "folder_path"
	LoggingFileNameKey           = "file_name"
	LoggingFilesCountKey         = "files_count"
	LoggingPagesCountKey         = "pages_count"
	LoggingBlankPagesCountKey    = "blank_pages_count"
	LoggingOutputPathKey         = "output_path"
	LoggingObjectNameKey         = "object_name"
	LoggingQueueNameKey          = "queue_name"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingResponseCountKey      = "response_count"
)
