package config

type (
	DriverConfig struct {
		Database Database
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
	}

	InternalConfig struct {
		App        App
		Secretaria Secretaria
		Report     Report
	}

	App struct {
		Env                       string
		Port                      string
		Version                   string
		Timezone                  string
		MaxRequests               int
		ShutdownTimeout           int
		RequestTimeoutInSeconds   int
		HeavyTimeoutInSeconds     int
		HeavyRequestsPerMinute    int
		HeavyRequestBlockInSecond int
		OpenFiles                 bool
		DataPaths                 []string
		DataPath                  string
		ChangelogPath             string
	}

	Secretaria struct {
		Source string
	}

	Report struct {
		OutputDir string
	}

	Database struct {
		Driver     string
		Host       string
		Port       string
		Name       string
		Username   string
		Password   string
		SQLitePath string
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}

	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}

	Minio struct {
		Port       string
		Host       string
		Username   string
		Password   string
		BucketName string
		UseSSL     bool
	}
)

func (r Redis) Enabled() bool    { return r.Host != "" }
func (r RabbitMQ) Enabled() bool { return r.Host != "" }
func (m Minio) Enabled() bool    { return m.Host != "" }
