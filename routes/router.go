package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/JohnFrp/pharmacy-pos/controllers"
	"github.com/JohnFrp/pharmacy-pos/middlewares"
)

func RegisterRoutes(r *gin.Engine) {

	r.POST("/auth/login", controllers.Login)
	r.POST("/auth/register", controllers.Register)

	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", controllers.Profile)
		auth.GET("/search", controllers.GetMedications)
		auth.GET("/dashboard", controllers.GetDashboard)
	}

	// Inventory
	medications := r.Group("/medications")
	medications.Use(middlewares.AuthMiddleware())
	{
		medications.GET("/", controllers.GetMedications)
		medications.GET("/sellable", controllers.GetSellableMedications)
		medications.GET("/:id", controllers.GetMedicationByID)
		medications.POST("/", controllers.CreateMedication)
		medications.PUT("/:id", controllers.UpdateMedication)
		medications.DELETE("/:id", controllers.DeleteMedication)
		medications.POST("/import", controllers.ImportMedications)
		medications.GET("/import/sample", controllers.DownloadSampleTemplate)
	}

	// Customers
	customers := r.Group("/customers")
	customers.Use(middlewares.AuthMiddleware())
	{
		customers.GET("/", controllers.GetCustomers)
		customers.GET("/:id", controllers.GetCustomerByID)
		customers.POST("/", controllers.CreateCustomer)
		customers.PUT("/:id", controllers.UpdateCustomer)
		customers.DELETE("/:id", controllers.DeleteCustomer)
	}

	// Sales
	sales := r.Group("/sales")
	sales.Use(middlewares.AuthMiddleware())
	{
		sales.POST("/", controllers.CreateSale)
		sales.GET("/", controllers.GetSales)
		sales.GET("/:id", controllers.GetSaleByID)
	}

	// Reports
	reports := r.Group("/reports")
	reports.Use(middlewares.AuthMiddleware())
	{
		reports.GET("/sales", controllers.GetSalesReport)
		reports.GET("/profit", controllers.GetProfitReport)
		reports.GET("/customers", controllers.GetCustomerReport)
		reports.GET("/sales/chart", controllers.GetSalesChart)
		reports.GET("/summary", controllers.GetSalesSummary)
		reports.GET("/export/sales", controllers.ExportSalesReport)
		reports.GET("/export/inventory", controllers.ExportInventoryReport)
		reports.GET("/export/profit", controllers.ExportProfitReport)
		reports.GET("/export/customers", controllers.ExportCustomerReport)
	}

	// Admin
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RoleMiddleware("admin"))
	{
		admin.GET("/users", controllers.GetUsers)
		admin.POST("/users", controllers.CreateUser)
		admin.GET("/users/pending", controllers.GetPendingApprovals)
		admin.POST("/users/:id/approve", controllers.ApproveUser)
		admin.POST("/users/:id/reject", controllers.RejectUser)
		admin.POST("/users/:id/promote", controllers.PromoteUser)
		admin.POST("/users/:id/demote", controllers.DemoteUser)
		admin.POST("/users/:id/toggle", controllers.ToggleUser)
		admin.DELETE("/users/:id", controllers.DeleteUser)

		admin.GET("/database", controllers.GetDatabaseStats)
		admin.GET("/database/backup", controllers.BackupDatabase)
		admin.POST("/database/restore", controllers.RestoreDatabase)
		admin.DELETE("/database", controllers.DeleteDatabase)
	}
}
