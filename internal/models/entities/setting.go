package entities

// Setting is one key-value pair of site configuration edited in the CMS.
type Setting struct {
	Key   string `json:"key" gorm:"column:key;primaryKey;type:nvarchar(100)"`
	Value string `json:"value" gorm:"column:value;type:nvarchar(max)"`
}

func (Setting) TableName() string {
	return "dbo.settings"
}
