package model

type Brand struct {
	Id    int    `gorm:"primaryKey"`
	Label string `gorm:"type:text;not null"`
}

func (Brand) TableName() string {
	return "brand"
}

type DeviceType struct {
	Id    int    `gorm:"primaryKey"`
	Label string `gorm:"type:text;not null"`
}

func (DeviceType) TableName() string {
	return "device_type"
}

type Device struct {
	Id           int    `gorm:"primaryKey"`
	Label        string `gorm:"type:text;not null"`
	BrandId      int    `gorm:"index"`
	DeviceTypeId int    `gorm:"index"`
}

func (Device) TableName() string {
	return "device"
}
