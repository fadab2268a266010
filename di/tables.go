package di

import (
	"hotelops/infras/gateway"
	bookingModel "hotelops/internal/domains/booking/model"
	productModel "hotelops/internal/domains/product/model"
	propertyModel "hotelops/internal/domains/property/model"
	roomModel "hotelops/internal/domains/room/model"
	saleModel "hotelops/internal/domains/sale/model"
	userModel "hotelops/internal/domains/user/model"
)

// gatewayTables are the tables reachable through the gateway's generic reads and writes.
func gatewayTables() gateway.Tables {
	return gateway.Tables{
		propertyModel.TableName,
		roomModel.TableName,
		bookingModel.TableName,
		bookingModel.GuestTableName,
		userModel.TableName,
		productModel.TableName,
		saleModel.TableName,
	}
}
